package api

import (
	"context"
	"net/http"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

func (c *Client) CreatePaymentOrder(ctx context.Context, amount float64) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	req := PaymentOrderRequestDTO{Amount: amount}
	if err := c.do(ctx, http.MethodPost, "/api/payment/order", true, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment forwards the gateway values untouched; the backend owns the
// signature check.
func (c *Client) VerifyPayment(ctx context.Context, result domain.PaymentResult) (bool, error) {
	var resp VerifyResponseDTO
	if err := c.do(ctx, http.MethodPost, "/api/payment/verify", true, result, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}
