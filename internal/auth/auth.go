package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const MinPasswordLength = 8

var ErrValidation = errors.New("invalid form input")

type LoginForm struct {
	Email    string
	Password string
}

type SignupForm struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// Backend is the part of the API client the login view needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, req api.SignupRequestDTO) (string, error)
}

type Sessions interface {
	Login(ctx context.Context, credential string) error
}

type View struct {
	backend  Backend
	sessions Sessions
	notifier notice.Notifier
	nav      nav.Navigator
}

func NewView(backend Backend, sessions Sessions, n notice.Notifier, navigator nav.Navigator) *View {
	return &View{backend: backend, sessions: sessions, notifier: n, nav: navigator}
}

// ValidateLogin returns the first problem with f as the user-facing text, or
// "" when the form is acceptable.
func ValidateLogin(f LoginForm) string {
	switch {
	case f.Email == "":
		return "Please fill in the email address."
	case !plausibleEmail(f.Email):
		return "Please enter a valid email address."
	case f.Password == "":
		return "Please fill in the password."
	case len(f.Password) < MinPasswordLength:
		return "Password must be at least 8 characters long."
	}
	return ""
}

func ValidateSignup(f SignupForm) string {
	switch {
	case f.Name == "":
		return "Please fill the name."
	case f.Email == "":
		return "Please fill the email address."
	case !plausibleEmail(f.Email):
		return "Please enter a valid email."
	case f.Password == "":
		return "Please fill the password."
	case len(f.Password) < MinPasswordLength:
		return "Password must be at least 8 characters long."
	}
	return ""
}

func plausibleEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func (v *View) Login(ctx context.Context, f LoginForm) error {
	if msg := ValidateLogin(f); msg != "" {
		notice.Errorf(v.notifier, "%s", msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	token, err := v.backend.Login(ctx, f.Email, f.Password)
	if err == nil {
		err = v.sessions.Login(ctx, token)
	}
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("login failed")
		notice.Errorf(v.notifier, "%s", fallback(api.Message(err), "Invalid email or password."))
		return err
	}

	notice.Successf(v.notifier, "Login successfull!")
	v.nav.Navigate(nav.Home)
	return nil
}

func (v *View) Signup(ctx context.Context, f SignupForm) error {
	if msg := ValidateSignup(f); msg != "" {
		notice.Errorf(v.notifier, "%s", msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	token, err := v.backend.Signup(ctx, api.SignupRequestDTO{
		Name:        f.Name,
		Email:       f.Email,
		Password:    f.Password,
		PhoneNumber: f.PhoneNumber,
	})
	if err == nil {
		err = v.sessions.Login(ctx, token)
	}
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("signup failed")
		notice.Errorf(v.notifier, "%s", fallback(api.Message(err), "Please try again."))
		return err
	}

	notice.Successf(v.notifier, "Registered successfully!")
	v.nav.Navigate(nav.Home)
	return nil
}

func fallback(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
