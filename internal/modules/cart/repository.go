package cart

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository defines cart persistence. The tx-scoped methods run inside a
// caller-owned transaction so a line change and its stock reservation
// commit or roll back together.
type Repository interface {
	// GetQtyForUpdate locks the line row and returns its quantity.
	// Returns ErrNotFound when the customer has no line for the product.
	GetQtyForUpdate(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64) (int, error)
	// Upsert inserts a line or adds qty to an existing one.
	Upsert(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64, qty int) error
	SetQty(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64, qty int) error
	DeleteLine(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64) error
	// ListForUpdate locks and returns every line of the customer's cart.
	ListForUpdate(ctx context.Context, tx *sql.Tx, customerID uuid.UUID) ([]Line, error)
	// Clear deletes only the listed lines. A line committed after the
	// caller's ListForUpdate snapshot must survive, reservation intact.
	Clear(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productIDs []int64) error

	// ListByCustomer returns the cart joined with product data.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]LineView, error)
}
