package payment

import "context"

// Gateway abstracts the payment provider so the transaction flow can be
// tested against a fake and a second provider can be added later.
type Gateway interface {
	// CreateSession registers the payment with the provider and returns a
	// checkout session the customer completes out of band.
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	// QueryStatus asks the provider for the current state of a payment.
	QueryStatus(ctx context.Context, orderID string) (Status, error)
}
