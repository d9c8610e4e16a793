package paywidget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/diyabansal-1605/full-stack-project/internal/checkout"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
)

// Signer plays the gateway's part in development: it signs a payment the way
// the real gateway would so the backend can verify it.
type Signer func(orderID, paymentID string) string

// Terminal is a text rendition of the hosted payment widget. It shows the
// handoff and reads the gateway result from In. It never verifies anything.
// In is read through one scanner for the life of the Terminal.
type Terminal struct {
	In     io.Reader
	Out    io.Writer
	Signer Signer

	scanner *bufio.Scanner
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Open blocks until the user completes or dismisses the payment and invokes
// the matching callback before returning. End of input counts as dismissal.
func (t *Terminal) Open(ctx context.Context, opts checkout.WidgetOptions, cb checkout.Callbacks) error {
	fmt.Fprintf(t.Out, "\n== %s ==\n%s\n", opts.Name, opts.Description)
	fmt.Fprintf(t.Out, "Amount:   %s %s\n", formatMinor(opts.Amount), opts.Currency)
	fmt.Fprintf(t.Out, "Order:    %s\n", opts.OrderID)
	if opts.Key != "" {
		fmt.Fprintf(t.Out, "Key:      %s\n", opts.Key)
	}

	if t.scanner == nil {
		t.scanner = bufio.NewScanner(t.In)
	}
	scanner := t.scanner
	for {
		if t.Signer != nil {
			fmt.Fprint(t.Out, "Enter 'pay', 'cancel' or <order_id> <payment_id> <signature>: ")
		} else {
			fmt.Fprint(t.Out, "Enter 'cancel' or <order_id> <payment_id> <signature>: ")
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read payment input: %w", err)
			}
			dismiss(cb)
			return nil
		}

		result, cancelled, err := t.parse(opts, scanner.Text())
		if err != nil {
			fmt.Fprintln(t.Out, err)
			continue
		}
		if cancelled {
			dismiss(cb)
			return nil
		}
		if cb.OnComplete != nil {
			cb.OnComplete(result)
		}
		return nil
	}
}

var errBadInput = errors.New("expected 'cancel' or three values")

func (t *Terminal) parse(opts checkout.WidgetOptions, line string) (domain.PaymentResult, bool, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 1 && strings.EqualFold(fields[0], "cancel"):
		return domain.PaymentResult{}, true, nil
	case len(fields) == 1 && strings.EqualFold(fields[0], "pay") && t.Signer != nil:
		paymentID := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
		return domain.PaymentResult{
			OrderID:   opts.OrderID,
			PaymentID: paymentID,
			Signature: t.Signer(opts.OrderID, paymentID),
		}, false, nil
	case len(fields) == 3:
		return domain.PaymentResult{OrderID: fields[0], PaymentID: fields[1], Signature: fields[2]}, false, nil
	}
	return domain.PaymentResult{}, false, errBadInput
}

func dismiss(cb checkout.Callbacks) {
	if cb.OnDismiss != nil {
		cb.OnDismiss()
	}
}

func formatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
