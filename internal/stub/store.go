package stub

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

const (
	// PaymentOrderTTL is how long a payment order can be paid before it expires
	PaymentOrderTTL = 15 * time.Minute

	// CleanupInterval is how often expired payment orders are swept
	CleanupInterval = 30 * time.Second

	currencyINR = "INR"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrNotInCart            = errors.New("product not in cart")
	ErrQuantityLimit        = errors.New("maximum quantity reached")
	ErrDuplicateReview      = errors.New("review already submitted")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrPaymentOrderNotFound = errors.New("payment order not found")
	ErrPaymentOrderExpired  = errors.New("payment order has expired")
	ErrInvalidStatus        = errors.New("invalid payment order status for this operation")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

type User struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

func (u User) Identity() domain.Identity {
	return domain.Identity{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

type PaymentOrderStatus string

const (
	PaymentCreated PaymentOrderStatus = "created"
	PaymentPaid    PaymentOrderStatus = "paid"
	PaymentExpired PaymentOrderStatus = "expired"
)

// PaymentOrder is a gateway order awaiting payment. Amount is in paise.
// Lines holds the cart as it was when the order was created.
type PaymentOrder struct {
	ID        string
	UserID    string
	Amount    int64
	Currency  string
	Status    PaymentOrderStatus
	Lines     []domain.CartLine
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (p *PaymentOrder) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

// MemoryStore holds everything the development backend serves.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories []domain.Category
	users      map[string]*User
	reviews    map[string][]domain.Review
	reviewed   map[string]map[string]bool // productID -> userID
	carts      map[string][]domain.CartLine
	addresses  map[string]domain.Address
	payments   map[string]*PaymentOrder
	orders     map[string][]domain.Order

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		products:    make(map[string]domain.Product),
		users:       make(map[string]*User),
		reviews:     make(map[string][]domain.Review),
		reviewed:    make(map[string]map[string]bool),
		carts:       make(map[string][]domain.CartLine),
		addresses:   make(map[string]domain.Address),
		payments:    make(map[string]*PaymentOrder),
		orders:      make(map[string][]domain.Order),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expirePaymentOrders()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expirePaymentOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.Status == PaymentCreated && p.IsExpired() {
			p.Status = PaymentExpired
		}
	}
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	s.products[p.ID] = p
	return p
}

func (s *MemoryStore) AddCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

// Products returns products filtered by category and subcategory, matched
// case-insensitively. Empty filters match everything.
func (s *MemoryStore) Products(category, subcategory string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if subcategory != "" && !strings.EqualFold(p.Subcategory, subcategory) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *MemoryStore) Product(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryStore) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *MemoryStore) Reviews(productID string) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews[productID]))
	copy(out, s.reviews[productID])
	return out
}

// AddReview stores one review per user and product.
func (s *MemoryStore) AddReview(userID, productID, text string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return domain.Review{}, ErrProductNotFound
	}
	user, ok := s.users[userID]
	if !ok {
		return domain.Review{}, ErrUserNotFound
	}
	if s.reviewed[productID][userID] {
		return domain.Review{}, ErrDuplicateReview
	}
	if s.reviewed[productID] == nil {
		s.reviewed[productID] = make(map[string]bool)
	}
	s.reviewed[productID][userID] = true

	r := domain.Review{ID: newID(), ProductID: productID, UserName: user.Name, Text: text}
	s.reviews[productID] = append(s.reviews[productID], r)
	return r, nil
}

func (s *MemoryStore) CreateUser(u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrUserExists
		}
	}
	u.ID = newID()
	s.users[u.ID] = &u
	return u, nil
}

// Authenticate checks the password as stored. Development only.
func (s *MemoryStore) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			return *u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

func (s *MemoryStore) User(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *u, nil
}

func (s *MemoryStore) UpdateUser(id string, identity domain.Identity) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && strings.EqualFold(other.Email, identity.Email) {
			return User{}, ErrUserExists
		}
	}
	u.Name = identity.Name
	u.Email = identity.Email
	u.PhoneNumber = identity.PhoneNumber
	return *u, nil
}

// AddToCart adds quantity of a product, merging with an existing line. A line never
// exceeds the maximum quantity.
func (s *MemoryStore) AddToCart(userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	if quantity < domain.MinQuantity {
		return ErrQuantityLimit
	}

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductRef == productID {
			if lines[i].Quantity+quantity > domain.MaxQuantity {
				return ErrQuantityLimit
			}
			lines[i].Quantity += quantity
			return nil
		}
	}
	if quantity > domain.MaxQuantity {
		return ErrQuantityLimit
	}
	s.carts[userID] = append(lines, domain.CartLine{
		ProductRef:  stored.ID,
		Name:        stored.Name,
		Description: stored.Description,
		Image:       stored.Image,
		UnitPrice:   stored.Price,
		Quantity:    quantity,
	})
	return nil
}

func (s *MemoryStore) Cart(userID string) []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.carts[userID]))
	copy(out, s.carts[userID])
	return out
}

func (s *MemoryStore) UpdateCartItem(userID, productID string, quantity int) error {
	if !domain.QuantityInRange(quantity) {
		return ErrQuantityLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductRef == productID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotInCart
}

func (s *MemoryStore) RemoveCartItem(userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductRef == productID {
			s.carts[userID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Address returns the saved address and whether there is one.
func (s *MemoryStore) Address(userID string) (domain.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.addresses[userID]
	return a, ok
}

func (s *MemoryStore) SaveAddress(userID string, a domain.Address) domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[userID] = a
	return a
}

func (s *MemoryStore) ReplaceAddress(userID string, a domain.Address) (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[userID]; !ok {
		return domain.Address{}, ErrAddressNotFound
	}
	s.addresses[userID] = a
	return a, nil
}

// CreatePaymentOrder converts a rupee amount into a paise order.
func (s *MemoryStore) CreatePaymentOrder(userID string, rupees float64) (*PaymentOrder, error) {
	paise := int64(math.Round(rupees * 100))
	if paise <= 0 {
		return nil, ErrInvalidAmount
	}
	now := time.Now()
	p := &PaymentOrder{
		ID:        "order_" + newID()[:14],
		UserID:    userID,
		Amount:    paise,
		Currency:  currencyINR,
		Status:    PaymentCreated,
		CreatedAt: now,
		ExpiresAt: now.Add(PaymentOrderTTL),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.Lines = append([]domain.CartLine(nil), s.carts[userID]...)
	s.payments[p.ID] = p
	out := *p
	return &out, nil
}

// CompletePayment marks the payment order paid and turns the cart captured
// by CreatePaymentOrder into an order. The user's cart is cleared.
func (s *MemoryStore) CompletePayment(userID, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[orderID]
	if !ok || p.UserID != userID {
		return domain.Order{}, ErrPaymentOrderNotFound
	}
	if p.Status != PaymentCreated {
		return domain.Order{}, ErrInvalidStatus
	}
	if p.IsExpired() {
		p.Status = PaymentExpired
		return domain.Order{}, ErrPaymentOrderExpired
	}

	order := domain.Order{ID: newID()}
	for _, l := range p.Lines {
		order.Products = append(order.Products, domain.OrderProduct{
			ProductRef: l.ProductRef,
			Name:       l.Name,
			Image:      l.Image,
			Price:      l.UnitPrice,
			Quantity:   l.Quantity,
		})
		order.TotalAmount += l.Subtotal()
	}

	p.Status = PaymentPaid
	s.orders[userID] = append(s.orders[userID], order)
	delete(s.carts, userID)
	return order, nil
}

func (s *MemoryStore) PaymentOrder(id string) (PaymentOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return PaymentOrder{}, ErrPaymentOrderNotFound
	}
	return *p, nil
}

func (s *MemoryStore) Orders(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders[userID]))
	copy(out, s.orders[userID])
	return out
}
