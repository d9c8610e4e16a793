package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

var ErrUndecodable = errors.New("credential cannot be decoded")

// Decode reads the display identity out of a credential without checking its
// signature or expiry. The result is untrusted; the backend authorizes every
// call on its own.
func Decode(credential string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	id := claimString(claims, "id", "_id", "userId")
	if id == "" {
		if sub, err := claims.GetSubject(); err == nil {
			id = sub
		}
	}
	return domain.Identity{
		ID:          id,
		Name:        claimString(claims, "name"),
		Email:       claimString(claims, "email"),
		PhoneNumber: claimString(claims, "phoneNumber"),
	}, nil
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
