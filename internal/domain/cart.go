package domain

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// CartLine is one product entry of the user's server-side cart.
type CartLine struct {
	ProductRef  string  `json:"productRef"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

func QuantityInRange(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}
