package checkout

import (
	"context"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/events"
)

type backendMock struct {
	mu sync.Mutex

	address    *domain.Address
	addressErr error
	added      int
	lines      []domain.CartLine
	cartErr    error

	order       *domain.PaymentOrder
	orderErr    error
	orderAmount float64
	orderCalls  int

	verifyOK     bool
	verifyErr    error
	verifyCalls  int
	verifiedWith domain.PaymentResult
}

func (b *backendMock) Address(ctx context.Context) (*domain.Address, error) {
	return b.address, b.addressErr
}

func (b *backendMock) AddAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.added++
	return &a, nil
}

func (b *backendMock) UpdateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	return &a, nil
}

func (b *backendMock) Cart(ctx context.Context) ([]domain.CartLine, error) {
	return b.lines, b.cartErr
}

func (b *backendMock) UpdateCartItem(ctx context.Context, productRef string, quantity int) error {
	return nil
}

func (b *backendMock) RemoveCartItem(ctx context.Context, productRef string) error {
	return nil
}

func (b *backendMock) CreatePaymentOrder(ctx context.Context, amount float64) (*domain.PaymentOrder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orderCalls++
	b.orderAmount = amount
	if b.orderErr != nil {
		return nil, b.orderErr
	}
	return b.order, nil
}

func (b *backendMock) VerifyPayment(ctx context.Context, result domain.PaymentResult) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verifyCalls++
	b.verifiedWith = result
	return b.verifyOK, b.verifyErr
}

// widgetMock keeps the callbacks so tests decide how the widget finishes.
type widgetMock struct {
	opened    int
	opts      WidgetOptions
	callbacks Callbacks
	err       error
}

func (w *widgetMock) Open(ctx context.Context, opts WidgetOptions, cb Callbacks) error {
	w.opened++
	w.opts = opts
	w.callbacks = cb
	return w.err
}

type publisherMock struct {
	mu     sync.Mutex
	events []events.CheckoutOutcome
	err    error
}

func (p *publisherMock) Publish(ctx context.Context, e events.CheckoutOutcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *publisherMock) Close() error { return nil }

type sessionsMock struct{}

func (sessionsMock) Current() domain.Session {
	return domain.Session{Credential: "tok", Identity: &domain.Identity{ID: "u1"}}
}
