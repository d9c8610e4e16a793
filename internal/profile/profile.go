package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
)

const (
	msgUpdated      = "Profile updated successfully"
	msgUpdateFailed = "Failed to update profile"
	msgLoggedOut    = "Successfully logged out!"
)

var (
	ErrUnknownField = errors.New("unknown profile field")
	ErrNoIdentity   = errors.New("session has no identity")
)

type Backend interface {
	UpdateProfile(ctx context.Context, id domain.Identity) error
}

type Sessions interface {
	Current() domain.Session
	UpdateIdentity(id domain.Identity) bool
	Logout(ctx context.Context) error
}

// View edits the identity fields of the current session.
type View struct {
	backend  Backend
	sessions Sessions
	notifier notice.Notifier
	nav      nav.Navigator

	mu      sync.Mutex
	initial domain.Identity
	fields  domain.Identity
	editing map[string]bool
}

func NewView(backend Backend, sessions Sessions, n notice.Notifier, navigator nav.Navigator) (*View, error) {
	s := sessions.Current()
	if s.Identity == nil {
		return nil, ErrNoIdentity
	}
	return &View{
		backend:  backend,
		sessions: sessions,
		notifier: n,
		nav:      navigator,
		initial:  *s.Identity,
		fields:   *s.Identity,
		editing:  map[string]bool{},
	}, nil
}

func (v *View) Fields() domain.Identity {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields
}

func (v *View) Editing(field string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing[field]
}

// ToggleEdit opens a field for editing or, when it is open, closes it and
// reverts it to its initial value.
func (v *View) ToggleEdit(field string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	initial, err := get(v.initial, field)
	if err != nil {
		return err
	}
	if v.editing[field] {
		_ = set(&v.fields, field, initial)
	}
	v.editing[field] = !v.editing[field]
	return nil
}

func (v *View) SetField(field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return set(&v.fields, field, value)
}

// Save sends the fields to the backend and then publishes a new session
// value carrying them.
func (v *View) Save(ctx context.Context) error {
	v.mu.Lock()
	fields := v.fields
	v.mu.Unlock()

	if err := v.backend.UpdateProfile(ctx, fields); err != nil {
		logger.WithContext(ctx).WithError(err).Error("update profile failed")
		notice.Errorf(v.notifier, msgUpdateFailed)
		return err
	}

	v.mu.Lock()
	v.initial = fields
	v.editing = map[string]bool{}
	v.mu.Unlock()

	v.sessions.UpdateIdentity(fields)
	notice.Successf(v.notifier, msgUpdated)
	return nil
}

func (v *View) Logout(ctx context.Context) error {
	err := v.sessions.Logout(ctx)
	v.nav.Navigate(nav.Login)
	notice.Successf(v.notifier, msgLoggedOut)
	return err
}

func get(id domain.Identity, field string) (string, error) {
	switch field {
	case FieldName:
		return id.Name, nil
	case FieldEmail:
		return id.Email, nil
	case FieldPhoneNumber:
		return id.PhoneNumber, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func set(id *domain.Identity, field, value string) error {
	switch field {
	case FieldName:
		id.Name = value
	case FieldEmail:
		id.Email = value
	case FieldPhoneNumber:
		id.PhoneNumber = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}
