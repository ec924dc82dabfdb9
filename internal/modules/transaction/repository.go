package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Repository defines transaction persistence.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByOrderID(ctx context.Context, midtransOrderID string) (*Transaction, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error)
	// Transition moves a PENDING transaction to status inside the caller's
	// database transaction. ok is false when no PENDING row matched, which
	// means the transaction is missing or was already resolved.
	Transition(ctx context.Context, tx *sql.Tx, midtransOrderID string, status Status) (t *Transaction, ok bool, err error)
	// ListPendingBefore returns PENDING transactions created before cutoff.
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Transaction, error)
}
