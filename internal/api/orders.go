package api

import (
	"context"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var resp OrdersResponseDTO
	if err := c.get(ctx, "/api/orders", true, &resp); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, o.toDomain())
	}
	return orders, nil
}
