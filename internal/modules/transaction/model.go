package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no transaction matches.
	ErrNotFound = errors.New("transaction not found")
	// ErrEmptyCart is returned when checkout is attempted with nothing in
	// the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidState is returned when a resolution conflicts with an
	// earlier, different resolution of the same transaction.
	ErrInvalidState = errors.New("transaction already resolved")
)

// Status is the lifecycle state of a transaction. PENDING moves exactly
// once, to either APPROVED or CANCELLED.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCancelled Status = "CANCELLED"
)

// Transaction is one checkout attempt. MidtransOrderID is the external
// identifier shared with the payment provider.
type Transaction struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	MidtransOrderID string    `json:"midtrans_order_id"`
	Amount          int64     `json:"amount"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CheckoutResult is a created transaction plus the payment session the
// customer completes.
type CheckoutResult struct {
	Transaction Transaction `json:"transaction"`
	Token       string      `json:"token"`
	RedirectURL string      `json:"redirect_url"`
}
