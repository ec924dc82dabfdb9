package payment

import "errors"

// ErrUpstream is returned when the payment provider cannot be reached or
// answers with a non-success response.
var ErrUpstream = errors.New("payment provider unavailable")

// Status is the provider-independent outcome of a payment.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Item is a priced line item passed to the provider.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"quantity"`
}

// Customer identifies the payer on the provider's checkout page.
type Customer struct {
	Name  string `json:"first_name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SessionRequest describes a payment to be collected.
type SessionRequest struct {
	OrderID     string
	GrossAmount int64
	Items       []Item
	Customer    Customer
}

// Session is a created checkout session.
type Session struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}
