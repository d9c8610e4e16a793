package api

import (
	"context"
	"net/http"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

// AddToCart returns the backend's confirmation message, which may be empty.
func (c *Client) AddToCart(ctx context.Context, p domain.Product, quantity int) (string, error) {
	req := AddToCartRequestDTO{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Quantity:    quantity,
	}
	var resp MessageResponseDTO
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", true, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Cart(ctx context.Context) ([]domain.CartLine, error) {
	var dtos []CartItemDTO
	if err := c.get(ctx, "/api/cart", true, &dtos); err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(dtos))
	for _, d := range dtos {
		lines = append(lines, d.toDomain())
	}
	return lines, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, productRef string, quantity int) error {
	req := UpdateCartRequestDTO{ProductID: productRef, Quantity: quantity}
	return c.do(ctx, http.MethodPut, "/api/cart/update", true, req, nil)
}

// RemoveCartItem sends the product id in the DELETE body.
func (c *Client) RemoveCartItem(ctx context.Context, productRef string) error {
	req := RemoveCartRequestDTO{ProductID: productRef}
	return c.do(ctx, http.MethodDelete, "/api/cart/remove", true, req, nil)
}
