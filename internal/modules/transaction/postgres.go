package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	createSQL = `INSERT INTO transactions (id, customer_id, midtrans_order_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`
	getByOrderIDSQL = `SELECT id, customer_id, midtrans_order_id, amount, status, created_at, updated_at
		FROM transactions WHERE midtrans_order_id = $1`
	listByCustomerSQL = `SELECT id, customer_id, midtrans_order_id, amount, status, created_at, updated_at
		FROM transactions WHERE customer_id = $1 ORDER BY created_at DESC`
	transitionSQL = `UPDATE transactions SET status = $2, updated_at = NOW()
		WHERE midtrans_order_id = $1 AND status = 'PENDING'
		RETURNING id, customer_id, midtrans_order_id, amount, status, created_at, updated_at`
	listPendingSQL = `SELECT id, customer_id, midtrans_order_id, amount, status, created_at, updated_at
		FROM transactions WHERE status = 'PENDING' AND created_at < $1
		ORDER BY created_at LIMIT $2`
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a transaction repository backed by
// PostgreSQL.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, t *Transaction) error {
	err := r.db.QueryRowContext(ctx, createSQL, t.ID, t.CustomerID, t.MidtransOrderID, t.Amount, t.Status).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByOrderID(ctx context.Context, midtransOrderID string) (*Transaction, error) {
	var t Transaction
	err := r.db.QueryRowContext(ctx, getByOrderIDSQL, midtransOrderID).
		Scan(&t.ID, &t.CustomerID, &t.MidtransOrderID, &t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error) {
	return r.list(ctx, listByCustomerSQL, customerID)
}

func (r *postgresRepository) Transition(ctx context.Context, tx *sql.Tx, midtransOrderID string, status Status) (*Transaction, bool, error) {
	var t Transaction
	err := tx.QueryRowContext(ctx, transitionSQL, midtransOrderID, status).
		Scan(&t.ID, &t.CustomerID, &t.MidtransOrderID, &t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("transition transaction: %w", err)
	}
	return &t, true, nil
}

func (r *postgresRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Transaction, error) {
	return r.list(ctx, listPendingSQL, cutoff, limit)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.MidtransOrderID, &t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}
