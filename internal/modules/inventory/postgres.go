package inventory

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresLedger struct{}

// NewPostgresLedger creates a Ledger backed by the products table.
func NewPostgresLedger() Ledger { return &postgresLedger{} }

// Reserve relies on a single conditional UPDATE: the row-level write lock it
// takes serialises concurrent reservations for the same product, and the
// stock >= qty guard means two racing reservations for the last unit can
// never both succeed.
func (l *postgresLedger) Reserve(ctx context.Context, tx *sql.Tx, productID int64, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`, productID, qty)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Zero rows means either no such product or not enough stock.
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if !exists {
		return ErrProductNotFound
	}
	return ErrOutOfStock
}

func (l *postgresLedger) Release(ctx context.Context, tx *sql.Tx, productID int64, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1`, productID, qty)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
