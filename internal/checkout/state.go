package checkout

import (
	"errors"
	"fmt"
)

type State string

const (
	StateCollectingAddress    State = "COLLECTING_ADDRESS"
	StateAddressConfirmed     State = "ADDRESS_CONFIRMED"
	StateAwaitingPaymentOrder State = "AWAITING_PAYMENT_ORDER"
	StatePaymentWidgetOpen    State = "PAYMENT_WIDGET_OPEN"
	StateVerifying            State = "VERIFYING"
	StateCompleted            State = "COMPLETED"
	StateFailed               State = "FAILED"
	StateCancelled            State = "CANCELLED"
)

var ErrIllegalTransition = errors.New("illegal transition of checkout state")

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

func (s State) String() string {
	return string(s)
}

var transitions = map[State][]State{
	StateCollectingAddress:    {StateAddressConfirmed},
	StateAddressConfirmed:     {StateAwaitingPaymentOrder},
	StateAwaitingPaymentOrder: {StatePaymentWidgetOpen, StateFailed},
	StatePaymentWidgetOpen:    {StateVerifying, StateCancelled, StateFailed},
	StateVerifying:            {StateCompleted, StateFailed},
	// a finished attempt is only left by a new user action
	StateCompleted: {StateAddressConfirmed},
	StateFailed:    {StateAddressConfirmed},
	StateCancelled: {StateAddressConfirmed},
}

func CanTransitionTo(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func illegal(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
