package order

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository defines order persistence.
type Repository interface {
	// Materialize writes one order row per listed cart line of the
	// customer, inside the caller's transaction. Only the lines the caller
	// locked may be converted; anything added concurrently stays a
	// reservation. Returns the number of rows written.
	Materialize(ctx context.Context, tx *sql.Tx, customerID, transactionID uuid.UUID, productIDs []int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Order, error)
}
