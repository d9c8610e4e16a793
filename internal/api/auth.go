package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

var errNoToken = errors.New("response carried no token")

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp TokenResponseDTO
	req := LoginRequestDTO{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errNoToken
	}
	return resp.Token, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequestDTO) (string, error) {
	var resp TokenResponseDTO
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", false, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errNoToken
	}
	return resp.Token, nil
}

func (c *Client) UpdateProfile(ctx context.Context, id domain.Identity) error {
	req := ProfileUpdateRequestDTO{Name: id.Name, Email: id.Email, PhoneNumber: id.PhoneNumber}
	return c.do(ctx, http.MethodPut, "/api/auth/update", true, req, nil)
}
