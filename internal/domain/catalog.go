package domain

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
}

type Category struct {
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	Subcategories []string `json:"subcategories"`
}

type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	UserName  string `json:"userName,omitempty"`
	Text      string `json:"review"`
}
