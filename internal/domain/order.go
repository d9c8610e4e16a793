package domain

type OrderProduct struct {
	ProductRef string  `json:"productRef"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Order is the read-only projection of a placed order.
type Order struct {
	ID          string         `json:"id"`
	Products    []OrderProduct `json:"products"`
	TotalAmount float64        `json:"totalAmount"`
}
