package orders

import (
	"context"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

type Backend interface {
	Orders(ctx context.Context) ([]domain.Order, error)
}

// View is the read-only order history. Load failures are logged and leave
// the list empty.
type View struct {
	backend Backend

	mu     sync.RWMutex
	orders []domain.Order
}

func NewView(backend Backend) *View {
	return &View{backend: backend}
}

func (v *View) Load(ctx context.Context) error {
	orders, err := v.backend.Orders(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("fetch orders failed")
		return err
	}
	v.mu.Lock()
	v.orders = orders
	v.mu.Unlock()
	return nil
}

func (v *View) Orders() []domain.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]domain.Order, len(v.orders))
	copy(out, v.orders)
	return out
}

func (v *View) IsEmpty() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.orders) == 0
}
