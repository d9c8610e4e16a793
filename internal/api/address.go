package api

import (
	"context"
	"net/http"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

// Address returns the saved address, or nil when the user has none.
func (c *Client) Address(ctx context.Context) (*domain.Address, error) {
	var resp AddressResponseDTO
	if err := c.get(ctx, "/api/address/getAddress", true, &resp); err != nil {
		return nil, err
	}
	return resp.Address, nil
}

func (c *Client) AddAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	var resp AddressResponseDTO
	if err := c.do(ctx, http.MethodPost, "/api/address/addAddress", true, a, &resp); err != nil {
		return nil, err
	}
	return resp.Address, nil
}

func (c *Client) UpdateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	var resp AddressResponseDTO
	if err := c.do(ctx, http.MethodPut, "/api/address/updateAddress", true, a, &resp); err != nil {
		return nil, err
	}
	return resp.Address, nil
}
