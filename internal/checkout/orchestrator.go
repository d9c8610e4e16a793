package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/diyabansal-1605/full-stack-project/internal/address"
	"github.com/diyabansal-1605/full-stack-project/internal/cart"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/events"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	msgInitiateFailed = "Unable to initiate payment. Please try again later."
	msgOrderPlaced    = "Order placed successfully! Thank you for shopping with us."
	msgVerifyRejected = "Payment verification failed."
	msgVerifyFailed   = "Unable to verify payment. Please contact support."
	msgCancelled      = "Payment process was cancelled."

	defaultDescription = "Thank you for shopping with us."
)

var tracer = otel.Tracer("github.com/diyabansal-1605/full-stack-project/internal/checkout")

type Backend interface {
	address.Backend
	cart.Backend
	CreatePaymentOrder(ctx context.Context, amount float64) (*domain.PaymentOrder, error)
	VerifyPayment(ctx context.Context, result domain.PaymentResult) (bool, error)
}

type Sessions interface {
	Current() domain.Session
}

type Options struct {
	PaymentKeyID string
	ShopName     string
	Description  string
}

type Deps struct {
	Backend   Backend
	Sessions  Sessions
	Notifier  notice.Notifier
	Navigator nav.Navigator
	Widget    PaymentWidget
	Publisher events.Publisher
}

// CheckoutSession is a snapshot of the current attempt. It lives only as
// long as the orchestrator and is never persisted.
type CheckoutSession struct {
	ID           string
	State        State
	Address      *domain.Address
	Cart         []domain.CartLine
	Total        float64
	PaymentOrder *domain.PaymentOrder
}

// Orchestrator sequences address confirmation, payment order creation, the
// hosted widget and verification. Nothing is retried automatically.
type Orchestrator struct {
	backend   Backend
	sessions  Sessions
	notifier  notice.Notifier
	nav       nav.Navigator
	widget    PaymentWidget
	publisher events.Publisher
	opts      Options

	address *address.View
	cart    *cart.View

	mu    sync.Mutex
	id    string
	state State
	order *domain.PaymentOrder
}

func NewOrchestrator(deps Deps, opts Options) *Orchestrator {
	if opts.Description == "" {
		opts.Description = defaultDescription
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	o := &Orchestrator{
		backend:   deps.Backend,
		sessions:  deps.Sessions,
		notifier:  deps.Notifier,
		nav:       deps.Navigator,
		widget:    deps.Widget,
		publisher: publisher,
		opts:      opts,
		id:        uuid.NewString(),
		state:     StateCollectingAddress,
	}
	o.address = address.NewView(deps.Backend, deps.Notifier, deps.Navigator, o.addressObtained)
	o.cart = cart.NewView(deps.Backend, deps.Notifier)
	return o
}

func (o *Orchestrator) Address() *address.View { return o.address }
func (o *Orchestrator) Cart() *cart.View       { return o.cart }

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Open loads the address and the cart concurrently. An address that cannot
// be fetched leaves the checkout collecting one; only the cart error is
// returned.
func (o *Orchestrator) Open(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		// logged by the view; the form stays usable
		_ = o.address.Load(ctx)
		return nil
	})
	g.Go(func() error { return o.cart.Load(ctx) })
	return g.Wait()
}

// SummaryVisible reports whether the cart summary is shown, which happens
// once an address has been obtained.
func (o *Orchestrator) SummaryVisible() bool {
	return o.State() != StateCollectingAddress
}

func (o *Orchestrator) addressObtained(domain.Address) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateCollectingAddress {
		o.state = StateAddressConfirmed
	}
}

// Pay requests a payment order for the current cart total and opens the
// widget with it.
func (o *Orchestrator) Pay(ctx context.Context) error {
	if err := o.transition(StateAddressConfirmed, StateAwaitingPaymentOrder); err != nil {
		return err
	}
	ctx, span := o.startSpan(ctx, "checkout.pay")
	defer span.End()
	log := logger.WithContext(ctx).WithField("checkout_id", o.checkoutID())

	total := o.cart.Total()
	order, err := o.backend.CreatePaymentOrder(ctx, total)
	if err != nil {
		span.RecordError(err)
		log.WithError(err).Error("create payment order failed")
		o.fail(ctx, StateAwaitingPaymentOrder, msgInitiateFailed)
		return err
	}

	o.mu.Lock()
	o.order = order
	o.state = StatePaymentWidgetOpen
	o.mu.Unlock()

	opts := WidgetOptions{
		Key:         o.opts.PaymentKeyID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		OrderID:     order.ID,
		Name:        o.opts.ShopName,
		Description: o.opts.Description,
	}
	cb := Callbacks{
		OnComplete: func(r domain.PaymentResult) {
			if err := o.Complete(ctx, r); err != nil {
				log.WithError(err).Warn("payment completion not applied")
			}
		},
		OnDismiss: func() {
			if err := o.Dismiss(ctx); err != nil {
				log.WithError(err).Warn("payment dismissal not applied")
			}
		},
	}
	if err := o.widget.Open(ctx, opts, cb); err != nil {
		log.WithError(err).Error("open payment widget failed")
		o.fail(ctx, StatePaymentWidgetOpen, msgInitiateFailed)
		return err
	}
	return nil
}

// Complete forwards the gateway values unchanged to the backend for
// verification.
func (o *Orchestrator) Complete(ctx context.Context, result domain.PaymentResult) error {
	if err := o.transition(StatePaymentWidgetOpen, StateVerifying); err != nil {
		return err
	}
	ctx, span := o.startSpan(ctx, "checkout.verify", attribute.String("payment.order_id", result.OrderID))
	defer span.End()
	log := logger.WithContext(ctx).WithField("checkout_id", o.checkoutID())

	ok, err := o.backend.VerifyPayment(ctx, result)
	switch {
	case err != nil:
		span.RecordError(err)
		log.WithError(err).Error("verify payment failed")
		o.fail(ctx, StateVerifying, msgVerifyFailed)
		return err
	case !ok:
		log.WithField("order_id", result.OrderID).Warn("payment verification rejected")
		o.fail(ctx, StateVerifying, msgVerifyRejected)
		return nil
	}

	if err := o.transition(StateVerifying, StateCompleted); err != nil {
		return err
	}
	o.emit(ctx, StateCompleted)
	notice.Successf(o.notifier, msgOrderPlaced)
	o.nav.Navigate(nav.Home)
	return nil
}

// Dismiss records that the user closed the widget without paying. No
// backend call is made.
func (o *Orchestrator) Dismiss(ctx context.Context) error {
	if err := o.transition(StatePaymentWidgetOpen, StateCancelled); err != nil {
		return err
	}
	o.emit(ctx, StateCancelled)
	notice.Warnf(o.notifier, msgCancelled)
	return nil
}

// Retry starts a new attempt from a finished one.
func (o *Orchestrator) Retry() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.state.IsTerminal() {
		return illegal(o.state, StateAddressConfirmed)
	}
	o.state = StateAddressConfirmed
	o.order = nil
	o.id = uuid.NewString()
	return nil
}

func (o *Orchestrator) Snapshot() CheckoutSession {
	o.mu.Lock()
	s := CheckoutSession{ID: o.id, State: o.state}
	if o.order != nil {
		order := *o.order
		s.PaymentOrder = &order
	}
	o.mu.Unlock()

	s.Address = o.address.Saved()
	s.Cart = o.cart.Lines()
	s.Total = cart.Total(s.Cart)
	return s
}

func (o *Orchestrator) transition(from, to State) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != from || !CanTransitionTo(from, to) {
		return illegal(o.state, to)
	}
	o.state = to
	return nil
}

func (o *Orchestrator) fail(ctx context.Context, from State, msg string) {
	if err := o.transition(from, StateFailed); err != nil {
		logger.WithContext(ctx).WithError(err).Warn("checkout failure not applied")
		return
	}
	o.emit(ctx, StateFailed)
	notice.Errorf(o.notifier, "%s", msg)
}

func (o *Orchestrator) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("checkout.id", o.checkoutID()))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Orchestrator) checkoutID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.id
}

func (o *Orchestrator) emit(ctx context.Context, state State) {
	o.mu.Lock()
	e := events.CheckoutOutcome{CheckoutID: o.id, State: state.String(), At: time.Now().UTC()}
	if o.order != nil {
		e.OrderID = o.order.ID
		e.Amount = o.order.Amount
		e.Currency = o.order.Currency
	}
	o.mu.Unlock()

	if s := o.sessions.Current(); s.Identity != nil {
		e.UserID = s.Identity.ID
	}
	if err := o.publisher.Publish(ctx, e); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("checkout_id", e.CheckoutID).Error("publish checkout outcome failed")
	}
}
