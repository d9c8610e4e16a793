package checkout

import (
	"context"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

// WidgetOptions is what the hosted payment widget is opened with.
type WidgetOptions struct {
	Key         string
	Amount      int64
	Currency    string
	OrderID     string
	Name        string
	Description string
}

// Callbacks are invoked by the widget, at most one of them, once.
type Callbacks struct {
	OnComplete func(domain.PaymentResult)
	OnDismiss  func()
}

// PaymentWidget opens the hosted payment collection UI. Open may invoke a
// callback before returning or later from another goroutine.
type PaymentWidget interface {
	Open(ctx context.Context, opts WidgetOptions, cb Callbacks) error
}
