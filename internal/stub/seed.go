package stub

import "github.com/diyabansal-1605/full-stack-project/internal/domain"

// Seed fills s with a small demo catalog.
func Seed(s *MemoryStore) {
	s.AddCategory(domain.Category{Name: "Grocery", Image: "grocery.png", Subcategories: []string{"Tea", "Rice", "Spices"}})
	s.AddCategory(domain.Category{Name: "Electronics", Image: "electronics.png", Subcategories: []string{"Mobiles", "Audio"}})
	s.AddCategory(domain.Category{Name: "Fashion", Image: "fashion.png", Subcategories: []string{"Men", "Women"}})

	for _, p := range []domain.Product{
		{Name: "Assam Tea 500g", Description: "Strong CTC leaf tea", Image: "assam-tea.png", Price: 240, Category: "Grocery", Subcategory: "Tea"},
		{Name: "Darjeeling Green Tea", Description: "First flush green tea", Image: "green-tea.png", Price: 320, Category: "Grocery", Subcategory: "Tea"},
		{Name: "Basmati Rice 5kg", Description: "Aged long grain basmati", Image: "basmati.png", Price: 650, Category: "Grocery", Subcategory: "Rice"},
		{Name: "Garam Masala 100g", Description: "Whole spice blend", Image: "garam-masala.png", Price: 85, Category: "Grocery", Subcategory: "Spices"},
		{Name: "Wireless Earbuds", Description: "Bluetooth 5.3 earbuds", Image: "earbuds.png", Price: 1999, Category: "Electronics", Subcategory: "Audio"},
		{Name: "Budget Smartphone", Description: "6.5 inch display, 128GB", Image: "phone.png", Price: 10999, Category: "Electronics", Subcategory: "Mobiles"},
		{Name: "Cotton Kurta", Description: "Handloom cotton kurta", Image: "kurta.png", Price: 899, Category: "Fashion", Subcategory: "Men"},
		{Name: "Silk Saree", Description: "Banarasi silk saree", Image: "saree.png", Price: 4599, Category: "Fashion", Subcategory: "Women"},
	} {
		s.AddProduct(p)
	}
}
