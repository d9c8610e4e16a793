package address

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	msgSaveFailed     = "Failed to save address. Please try again."
	msgMissingField   = "Please fill in all address fields."
	msgInvalidPhone   = "Phone number must be exactly 10 digits."
	msgInvalidPincode = "Pincode must be exactly 6 characters."
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrUnknownField   = errors.New("unknown address field")
)

// Fields lists the form fields in display order.
var Fields = []string{"name", "phone", "address", "city", "state", "pincode"}

type Backend interface {
	Address(ctx context.Context) (*domain.Address, error)
	AddAddress(ctx context.Context, a domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, a domain.Address) (*domain.Address, error)
}

// View is the single delivery address with its toggleable edit form.
type View struct {
	backend  Backend
	notifier notice.Notifier
	nav      nav.Navigator
	onSaved  func(domain.Address)

	mu          sync.RWMutex
	saved       *domain.Address
	form        domain.Address
	formVisible bool
}

// NewView returns a view that reports every obtained address to onSaved,
// which may be nil.
func NewView(backend Backend, n notice.Notifier, navigator nav.Navigator, onSaved func(domain.Address)) *View {
	return &View{backend: backend, notifier: n, nav: navigator, onSaved: onSaved}
}

// Load fetches the saved address and pre-fills the form with it. Failures
// are logged only.
func (v *View) Load(ctx context.Context) error {
	a, err := v.backend.Address(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("fetch address failed")
		return err
	}
	if a == nil {
		return nil
	}

	v.mu.Lock()
	v.saved = a
	v.form = *a
	v.mu.Unlock()

	v.report(*a)
	return nil
}

// Saved returns the address last obtained from the backend, or nil.
func (v *View) Saved() *domain.Address {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.saved == nil {
		return nil
	}
	a := *v.saved
	return &a
}

func (v *View) FormVisible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.formVisible
}

func (v *View) ToggleForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.formVisible = !v.formVisible
}

// ToggleLabel is the caption of the button that shows or hides the form.
func (v *View) ToggleLabel() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	switch {
	case v.formVisible:
		return "Cancel"
	case v.saved != nil:
		return "Change Address"
	default:
		return "Add Address"
	}
}

func (v *View) Form() domain.Address {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.form
}

func (v *View) SetField(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch name {
	case "name":
		v.form.Name = value
	case "phone":
		v.form.Phone = value
	case "address":
		v.form.Address = value
	case "city":
		v.form.City = value
	case "state":
		v.form.State = value
	case "pincode":
		v.form.Pincode = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Validate returns the user-facing problem with a, or "".
func Validate(a domain.Address) string {
	if a.Name == "" || a.Phone == "" || a.Address == "" || a.City == "" || a.State == "" || a.Pincode == "" {
		return msgMissingField
	}
	if len(a.Phone) != 10 || !digits(a.Phone) {
		return msgInvalidPhone
	}
	if utf8.RuneCountInString(a.Pincode) != 6 {
		return msgInvalidPincode
	}
	return ""
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Submit creates the address when none was loaded and replaces it otherwise.
// On success the form closes and the page is reloaded.
func (v *View) Submit(ctx context.Context) error {
	v.mu.RLock()
	form := v.form
	exists := v.saved != nil
	v.mu.RUnlock()

	if msg := Validate(form); msg != "" {
		notice.Errorf(v.notifier, "%s", msg)
		return fmt.Errorf("%w: %s", ErrInvalidAddress, msg)
	}

	save := v.backend.AddAddress
	if exists {
		save = v.backend.UpdateAddress
	}
	a, err := save(ctx, form)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("save address failed")
		notice.Errorf(v.notifier, msgSaveFailed)
		return err
	}
	if a == nil {
		a = &form
	}

	v.mu.Lock()
	v.formVisible = false
	v.saved = a
	v.form = *a
	v.mu.Unlock()

	v.report(*a)
	v.nav.Reload()
	return nil
}

func (v *View) report(a domain.Address) {
	if v.onSaved != nil {
		v.onSaved(a)
	}
}
