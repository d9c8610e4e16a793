package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

type Config struct {
	JWTSecret      string
	PaymentSecret  string
	RequestTimeout time.Duration
}

// Server is an in-memory implementation of the storefront REST backend for
// development and end-to-end tests.
type Server struct {
	store         *MemoryStore
	tokens        *TokenIssuer
	paymentSecret string
	timeout       time.Duration
}

func NewServer(store *MemoryStore, cfg Config) *Server {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		store:         store,
		tokens:        NewTokenIssuer(cfg.JWTSecret),
		paymentSecret: cfg.PaymentSecret,
		timeout:       timeout,
	}
}

// Router returns the full route table wrapped in tracing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := AuthMiddleware(s.tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.ListProducts)
			r.Get("/{id}", s.GetProduct)
			r.Get("/category/{category}", s.ProductsByCategory)
			r.Get("/category/{category}/subcategory/{subcategory}", s.ProductsByCategory)
		})
		r.Get("/categories", s.ListCategories)

		r.Route("/reviews", func(r chi.Router) {
			r.With(auth).Post("/add", s.AddReview)
			r.Get("/{productId}", s.ListReviews)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.Login)
			r.Post("/signup", s.Signup)
			r.With(auth).Put("/update", s.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.GetCart)
				r.Post("/add", s.AddToCart)
				r.Put("/update", s.UpdateCartItem)
				r.Delete("/remove", s.RemoveCartItem)
			})

			r.Route("/address", func(r chi.Router) {
				r.Get("/getAddress", s.GetAddress)
				r.Post("/addAddress", s.AddAddress)
				r.Put("/updateAddress", s.UpdateAddress)
			})

			r.Route("/payment", func(r chi.Router) {
				r.Post("/order", s.CreatePaymentOrder)
				r.Post("/verify", s.VerifyPayment)
			})

			r.Get("/orders", s.ListOrders)
		})
	})

	return otelhttp.NewHandler(r, "storefront-stub")
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.L().WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Message: message,
	})
}

func handleStoreError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrNotInCart),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrPaymentOrderNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, ErrQuantityLimit):
		status = http.StatusBadRequest
		code = "quantity_limit"
	case errors.Is(err, ErrDuplicateReview), errors.Is(err, ErrUserExists):
		status = http.StatusBadRequest
		code = "already_exists"
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusBadRequest
		code = "invalid_credentials"
	case errors.Is(err, ErrInvalidAmount):
		status = http.StatusBadRequest
		code = "invalid_amount"
	case errors.Is(err, ErrPaymentOrderExpired), errors.Is(err, ErrInvalidStatus):
		status = http.StatusConflict
		code = "invalid_status"
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, status, code, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
