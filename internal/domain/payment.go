package domain

// PaymentOrder is the backend-issued order handed to the hosted payment
// widget. Amount is in the currency's minor unit, as issued by the gateway.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentResult carries the gateway-signed values returned by the widget.
// They are opaque to the client and forwarded unchanged for verification.
type PaymentResult struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`
}
