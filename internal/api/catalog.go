package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var dtos []ProductDTO
	if err := c.get(ctx, "/api/products", false, &dtos); err != nil {
		return nil, err
	}
	return toProducts(dtos), nil
}

func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var dto ProductDTO
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), false, &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

// ProductsByCategory lists a category, narrowed to subcategory when it is
// not empty.
func (c *Client) ProductsByCategory(ctx context.Context, category, subcategory string) ([]domain.Product, error) {
	path := "/api/products/category/" + url.PathEscape(category)
	if subcategory != "" {
		path += "/subcategory/" + url.PathEscape(subcategory)
	}
	var dtos []ProductDTO
	if err := c.get(ctx, path, false, &dtos); err != nil {
		return nil, err
	}
	return toProducts(dtos), nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var dtos []CategoryDTO
	if err := c.get(ctx, "/api/categories", false, &dtos); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, domain.Category{Name: d.Name, Image: d.Image, Subcategories: d.Subcategories})
	}
	return categories, nil
}

func (c *Client) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var dtos []ReviewDTO
	if err := c.get(ctx, "/api/reviews/"+url.PathEscape(productID), false, &dtos); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(dtos))
	for _, d := range dtos {
		reviews = append(reviews, d.toDomain())
	}
	return reviews, nil
}

func (c *Client) AddReview(ctx context.Context, productID, text string) (*domain.Review, error) {
	var resp AddReviewResponseDTO
	req := AddReviewRequestDTO{ProductID: productID, Review: text}
	if err := c.do(ctx, http.MethodPost, "/api/reviews/add", true, req, &resp); err != nil {
		return nil, err
	}
	r := resp.Review.toDomain()
	return &r, nil
}

func toProducts(dtos []ProductDTO) []domain.Product {
	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products
}
