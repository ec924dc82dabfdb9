package inventory

import (
	"context"
	"database/sql"
	"errors"
)

// ErrOutOfStock is returned by Reserve when the product exists but holds
// fewer units than requested. No mutation happens in that case.
var ErrOutOfStock = errors.New("product out of stock")

// ErrProductNotFound is returned by Reserve and Release for unknown products.
var ErrProductNotFound = errors.New("product not found")

// Ledger is the single owner of product stock mutation. Every reservation a
// cart holds is mirrored by an equal decrement already applied through
// Reserve, so stock + reserved + fulfilled stays constant per product.
//
// Both operations run on a caller-supplied *sql.Tx so the stock movement
// commits or rolls back together with the cart/order writes it belongs to.
type Ledger interface {
	// Reserve atomically decrements stock by qty, failing with ErrOutOfStock
	// when fewer than qty units remain.
	Reserve(ctx context.Context, tx *sql.Tx, productID int64, qty int) error
	// Release returns qty previously reserved units to stock. Callers must
	// never release more than they reserved.
	Release(ctx context.Context, tx *sql.Tx, productID int64, qty int) error
}
