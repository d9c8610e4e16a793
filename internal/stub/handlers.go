package stub

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

func productDTO(p domain.Product) api.ProductDTO {
	return api.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
	}
}

func productDTOs(products []domain.Product) []api.ProductDTO {
	out := make([]api.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, productDTO(p))
	}
	return out
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, productDTOs(s.store.Products("", "")))
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productDTO(p))
}

func (s *Server) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products := s.store.Products(chi.URLParam(r, "category"), chi.URLParam(r, "subcategory"))
	respondJSON(w, http.StatusOK, productDTOs(products))
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.Categories()
	out := make([]api.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.CategoryDTO{Name: c.Name, Image: c.Image, Subcategories: c.Subcategories})
	}
	respondJSON(w, http.StatusOK, out)
}

func reviewDTO(r domain.Review) api.ReviewDTO {
	return api.ReviewDTO{ID: r.ID, ProductID: r.ProductID, UserName: r.UserName, Review: r.Text}
}

func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews := s.store.Reviews(chi.URLParam(r, "productId"))
	out := make([]api.ReviewDTO, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewDTO(rv))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) AddReview(w http.ResponseWriter, r *http.Request) {
	var req api.AddReviewRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Review) == "" {
		respondError(w, http.StatusBadRequest, "invalid_review", "review must not be empty")
		return
	}
	review, err := s.store.AddReview(getUserIDFromContext(r.Context()), req.ProductID, req.Review)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, api.AddReviewResponseDTO{Review: reviewDTO(review)})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequestDTO
	if !decode(w, r, &req) {
		return
	}
	u, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	s.respondToken(w, http.StatusOK, u)
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req api.SignupRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, email and a password of at least 8 characters are required")
		return
	}
	u, err := s.store.CreateUser(User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}
	s.respondToken(w, http.StatusCreated, u)
}

func (s *Server) respondToken(w http.ResponseWriter, status int, u User) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		logger.L().WithError(err).Error("issue token failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, status, api.TokenResponseDTO{Token: token})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req api.ProfileUpdateRequestDTO
	if !decode(w, r, &req) {
		return
	}
	u, err := s.store.UpdateUser(getUserIDFromContext(r.Context()), domain.Identity{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u.Identity())
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	lines := s.store.Cart(getUserIDFromContext(r.Context()))
	out := make([]api.CartItemDTO, 0, len(lines))
	for _, l := range lines {
		p, err := s.store.Product(l.ProductRef)
		if err != nil {
			p = domain.Product{ID: l.ProductRef, Name: l.Name, Description: l.Description, Image: l.Image, Price: l.UnitPrice}
		}
		out = append(out, api.CartItemDTO{Product: productDTO(p), Quantity: l.Quantity, Price: l.UnitPrice})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req api.AddToCartRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := s.store.AddToCart(getUserIDFromContext(r.Context()), req.ProductID, req.Quantity); err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, api.MessageResponseDTO{Message: "Product added to cart"})
}

func (s *Server) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateCartRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := s.store.UpdateCartItem(getUserIDFromContext(r.Context()), req.ProductID, req.Quantity); err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, api.MessageResponseDTO{Message: "Cart updated"})
}

func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var req api.RemoveCartRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := s.store.RemoveCartItem(getUserIDFromContext(r.Context()), req.ProductID); err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, api.MessageResponseDTO{Message: "Item removed from cart"})
}

func (s *Server) GetAddress(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.Address(getUserIDFromContext(r.Context()))
	if !ok {
		respondJSON(w, http.StatusOK, api.AddressResponseDTO{})
		return
	}
	respondJSON(w, http.StatusOK, api.AddressResponseDTO{Address: &a})
}

func (s *Server) AddAddress(w http.ResponseWriter, r *http.Request) {
	var a domain.Address
	if !decode(w, r, &a) {
		return
	}
	saved := s.store.SaveAddress(getUserIDFromContext(r.Context()), a)
	respondJSON(w, http.StatusCreated, api.AddressResponseDTO{Address: &saved})
}

func (s *Server) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var a domain.Address
	if !decode(w, r, &a) {
		return
	}
	saved, err := s.store.ReplaceAddress(getUserIDFromContext(r.Context()), a)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, api.AddressResponseDTO{Address: &saved})
}

func (s *Server) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req api.PaymentOrderRequestDTO
	if !decode(w, r, &req) {
		return
	}
	p, err := s.store.CreatePaymentOrder(getUserIDFromContext(r.Context()), req.Amount)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.PaymentOrder{ID: p.ID, Amount: p.Amount, Currency: p.Currency})
}

// VerifyPayment checks the gateway signature. A bad signature is reported as
// {success:false} rather than an error status.
func (s *Server) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentResult
	if !decode(w, r, &req) {
		return
	}
	log := logger.WithContext(r.Context()).WithField("order_id", req.OrderID)

	if !validSignature(s.paymentSecret, req.OrderID, req.PaymentID, req.Signature) {
		log.Warn("payment signature mismatch")
		respondJSON(w, http.StatusOK, api.VerifyResponseDTO{Success: false})
		return
	}

	order, err := s.store.CompletePayment(getUserIDFromContext(r.Context()), req.OrderID)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	log.WithField("placed_order", order.ID).Info("payment verified")
	respondJSON(w, http.StatusOK, api.VerifyResponseDTO{Success: true})
}

func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.store.Orders(getUserIDFromContext(r.Context()))
	out := api.OrdersResponseDTO{Orders: make([]api.OrderDTO, 0, len(orders))}
	for _, o := range orders {
		dto := api.OrderDTO{ID: o.ID, TotalAmount: o.TotalAmount}
		for _, p := range o.Products {
			dto.Products = append(dto.Products, api.OrderProductDTO{
				Product:  api.ProductDTO{ID: p.ProductRef, Name: p.Name, Image: p.Image, Price: p.Price},
				Name:     p.Name,
				Price:    p.Price,
				Quantity: p.Quantity,
			})
		}
		out.Orders = append(out.Orders, dto)
	}
	respondJSON(w, http.StatusOK, out)
}
