package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	msgFetchFailed  = "Failed to fetch cart items."
	msgAboveMaximum = "We only accept orders for a maximum of 10 items."
	msgBelowMinimum = "Quantity must be at least 1."
	msgUpdateFailed = "Failed to update cart."
	msgRemoved      = "Item removed from cart."
	msgRemoveFailed = "Failed to remove item from cart."
)

var (
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrLineNotFound       = errors.New("cart line not found")
)

type Backend interface {
	Cart(ctx context.Context) ([]domain.CartLine, error)
	UpdateCartItem(ctx context.Context, productRef string, quantity int) error
	RemoveCartItem(ctx context.Context, productRef string) error
}

// View holds the lines of the server-side cart as last acknowledged by the
// backend. It assumes an authenticated session.
type View struct {
	backend  Backend
	notifier notice.Notifier

	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewView(backend Backend, n notice.Notifier) *View {
	return &View{backend: backend, notifier: n}
}

func (v *View) Load(ctx context.Context) error {
	lines, err := v.backend.Cart(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("fetch cart failed")
		notice.Errorf(v.notifier, msgFetchFailed)
		return err
	}
	v.mu.Lock()
	v.lines = lines
	v.mu.Unlock()
	return nil
}

// Lines returns a copy of the current lines.
func (v *View) Lines() []domain.CartLine {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]domain.CartLine, len(v.lines))
	copy(out, v.lines)
	return out
}

// ChangeQuantity sets the quantity of one line. Out of range quantities are
// rejected before any call. The local line changes only once the backend
// accepts the update.
func (v *View) ChangeQuantity(ctx context.Context, productRef string, quantity int) error {
	switch {
	case quantity > domain.MaxQuantity:
		notice.Infof(v.notifier, msgAboveMaximum)
		return fmt.Errorf("%w: %d", ErrQuantityOutOfRange, quantity)
	case quantity < domain.MinQuantity:
		notice.Infof(v.notifier, msgBelowMinimum)
		return fmt.Errorf("%w: %d", ErrQuantityOutOfRange, quantity)
	}

	if err := v.backend.UpdateCartItem(ctx, productRef, quantity); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("product_id", productRef).Error("update cart failed")
		notice.Errorf(v.notifier, msgUpdateFailed)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.lines {
		if v.lines[i].ProductRef == productRef {
			v.lines[i].Quantity = quantity
		}
	}
	return nil
}

func (v *View) RemoveItem(ctx context.Context, productRef string) error {
	if err := v.backend.RemoveCartItem(ctx, productRef); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("product_id", productRef).Error("remove cart item failed")
		notice.Errorf(v.notifier, msgRemoveFailed)
		return err
	}

	v.mu.Lock()
	kept := v.lines[:0:0]
	for _, l := range v.lines {
		if l.ProductRef != productRef {
			kept = append(kept, l)
		}
	}
	v.lines = kept
	v.mu.Unlock()

	notice.Successf(v.notifier, msgRemoved)
	return nil
}

// Line returns the line for productRef.
func (v *View) Line(productRef string) (domain.CartLine, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, l := range v.lines {
		if l.ProductRef == productRef {
			return l, nil
		}
	}
	return domain.CartLine{}, ErrLineNotFound
}

// Total is recomputed from the current lines on every call.
func (v *View) Total() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Total(v.lines)
}

func (v *View) ItemCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n := 0
	for _, l := range v.lines {
		n += l.Quantity
	}
	return n
}

func (v *View) IsEmpty() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.lines) == 0
}

func Total(lines []domain.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
