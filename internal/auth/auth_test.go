package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

type backendMock struct {
	token   string
	err     error
	calls   int
	lastReq api.SignupRequestDTO
}

func (b *backendMock) Login(ctx context.Context, email, password string) (string, error) {
	b.calls++
	return b.token, b.err
}

func (b *backendMock) Signup(ctx context.Context, req api.SignupRequestDTO) (string, error) {
	b.calls++
	b.lastReq = req
	return b.token, b.err
}

type sessionsMock struct {
	credential string
	err        error
}

func (s *sessionsMock) Login(ctx context.Context, credential string) error {
	if s.err != nil {
		return s.err
	}
	s.credential = credential
	return nil
}

func newView() (*View, *backendMock, *sessionsMock, *notice.Recorder, *nav.History) {
	b := &backendMock{token: "tok"}
	s := &sessionsMock{}
	rec := &notice.Recorder{}
	h := nav.NewHistory(nav.Login)
	return NewView(b, s, rec, h), b, s, rec, h
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want string
	}{
		{name: "missing email", form: LoginForm{Password: "password1"}, want: "Please fill in the email address."},
		{name: "email without dot", form: LoginForm{Email: "a@b", Password: "password1"}, want: "Please enter a valid email address."},
		{name: "missing password", form: LoginForm{Email: "a@b.in"}, want: "Please fill in the password."},
		{name: "short password", form: LoginForm{Email: "a@b.in", Password: "short"}, want: "Password must be at least 8 characters long."},
		{name: "valid", form: LoginForm{Email: "a@b.in", Password: "12345678"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLogin(tt.form))
		})
	}
}

func TestValidateSignup_NameFirst(t *testing.T) {
	assert.Equal(t, "Please fill the name.", ValidateSignup(SignupForm{}))
	assert.Equal(t, "Please enter a valid email.", ValidateSignup(SignupForm{Name: "A", Email: "nope", Password: "12345678"}))
}

func TestLogin_ShortPasswordMakesNoCall(t *testing.T) {
	v, b, _, rec, _ := newView()

	err := v.Login(context.Background(), LoginForm{Email: "a@b.in", Password: "1234567"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, b.calls)
	assert.Equal(t, notice.Notice{Level: notice.Error, Text: "Password must be at least 8 characters long."}, rec.Last())
}

func TestLogin_Success(t *testing.T) {
	v, b, s, rec, h := newView()

	require.NoError(t, v.Login(context.Background(), LoginForm{Email: "a@b.in", Password: "password1"}))
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, "tok", s.credential)
	assert.Equal(t, notice.Notice{Level: notice.Success, Text: "Login successfull!"}, rec.Last())
	assert.Equal(t, nav.Home, h.Current())
}

func TestLogin_BackendMessage(t *testing.T) {
	v, b, _, rec, h := newView()
	b.err = &api.Error{StatusCode: 400, Message: "User not found"}

	assert.Error(t, v.Login(context.Background(), LoginForm{Email: "a@b.in", Password: "password1"}))
	assert.Equal(t, "User not found", rec.Last().Text)
	assert.Equal(t, nav.Login, h.Current())
}

func TestLogin_FallbackText(t *testing.T) {
	v, b, _, rec, _ := newView()
	b.err = errors.New("connection refused")

	assert.Error(t, v.Login(context.Background(), LoginForm{Email: "a@b.in", Password: "password1"}))
	assert.Equal(t, "Invalid email or password.", rec.Last().Text)
}

func TestLogin_UndecodableToken(t *testing.T) {
	v, _, s, rec, h := newView()
	s.err = errors.New("credential cannot be decoded")

	assert.Error(t, v.Login(context.Background(), LoginForm{Email: "a@b.in", Password: "password1"}))
	assert.Equal(t, notice.Error, rec.Last().Level)
	assert.Equal(t, nav.Login, h.Current())
}

func TestSignup(t *testing.T) {
	v, b, s, rec, h := newView()

	form := SignupForm{Name: "Asha", Email: "a@b.in", Password: "password1", PhoneNumber: "9876543210"}
	require.NoError(t, v.Signup(context.Background(), form))
	assert.Equal(t, api.SignupRequestDTO{Name: "Asha", Email: "a@b.in", Password: "password1", PhoneNumber: "9876543210"}, b.lastReq)
	assert.Equal(t, "tok", s.credential)
	assert.Equal(t, "Registered successfully!", rec.Last().Text)
	assert.Equal(t, nav.Home, h.Current())
}

func TestSignup_FallbackText(t *testing.T) {
	v, b, _, rec, _ := newView()
	b.err = errors.New("timeout")

	assert.Error(t, v.Signup(context.Background(), SignupForm{Name: "A", Email: "a@b.in", Password: "password1"}))
	assert.Equal(t, "Please try again.", rec.Last().Text)
}
