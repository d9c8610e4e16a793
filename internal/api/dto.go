package api

import "github.com/diyabansal-1605/full-stack-project/internal/domain"

// Wire shapes of the backend documents. Identifiers are Mongo-style "_id"
// strings and cart/order entries embed the populated product document.

type ProductDTO struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
}

type CategoryDTO struct {
	ID            string   `json:"_id,omitempty"`
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	Subcategories []string `json:"subcategories"`
}

type ReviewDTO struct {
	ID        string `json:"_id"`
	ProductID string `json:"productId"`
	UserName  string `json:"userName,omitempty"`
	Review    string `json:"review"`
}

type CartItemDTO struct {
	Product  ProductDTO `json:"productId"`
	Quantity int        `json:"quantity"`
	Price    float64    `json:"price"`
}

type AddToCartRequestDTO struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type UpdateCartRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type RemoveCartRequestDTO struct {
	ProductID string `json:"productId"`
}

type MessageResponseDTO struct {
	Message string `json:"message"`
}

type AddressResponseDTO struct {
	Address *domain.Address `json:"address"`
}

type AddReviewRequestDTO struct {
	ProductID string `json:"productId"`
	Review    string `json:"review"`
}

type AddReviewResponseDTO struct {
	Review ReviewDTO `json:"review"`
}

type PaymentOrderRequestDTO struct {
	Amount float64 `json:"amount"`
}

type VerifyResponseDTO struct {
	Success bool `json:"success"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequestDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}

type ProfileUpdateRequestDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type OrderProductDTO struct {
	Product  ProductDTO `json:"productId"`
	Name     string     `json:"name"`
	Price    float64    `json:"price"`
	Quantity int        `json:"quantity"`
}

type OrderDTO struct {
	ID          string            `json:"_id"`
	Products    []OrderProductDTO `json:"products"`
	TotalAmount float64           `json:"totalAmount"`
}

type OrdersResponseDTO struct {
	Orders []OrderDTO `json:"orders"`
}

func (p ProductDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
	}
}

func (c CartItemDTO) toDomain() domain.CartLine {
	price := c.Price
	if price == 0 {
		price = c.Product.Price
	}
	return domain.CartLine{
		ProductRef:  c.Product.ID,
		Name:        c.Product.Name,
		Description: c.Product.Description,
		Image:       c.Product.Image,
		UnitPrice:   price,
		Quantity:    c.Quantity,
	}
}

func (r ReviewDTO) toDomain() domain.Review {
	return domain.Review{ID: r.ID, ProductID: r.ProductID, UserName: r.UserName, Text: r.Review}
}

func (o OrderDTO) toDomain() domain.Order {
	products := make([]domain.OrderProduct, 0, len(o.Products))
	for _, p := range o.Products {
		name := p.Name
		if name == "" {
			name = p.Product.Name
		}
		products = append(products, domain.OrderProduct{
			ProductRef: p.Product.ID,
			Name:       name,
			Image:      p.Product.Image,
			Price:      p.Price,
			Quantity:   p.Quantity,
		})
	}
	return domain.Order{ID: o.ID, Products: products, TotalAmount: o.TotalAmount}
}
