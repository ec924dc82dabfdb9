package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	materializeSQL = `INSERT INTO orders (customer_id, product_id, qty, price, transaction_id, created_at)
		SELECT c.customer_id, c.product_id, c.qty, p.price, $2, NOW()
		FROM cart_lines c JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1 AND c.product_id = ANY($3)`
	listByCustomerSQL = `SELECT o.id, o.customer_id, o.product_id, p.name, o.qty, o.price, o.transaction_id, o.created_at
		FROM orders o JOIN products p ON p.id = o.product_id
		WHERE o.customer_id = $1 ORDER BY o.created_at DESC, o.id DESC`
	listByTransactionSQL = `SELECT o.id, o.customer_id, o.product_id, p.name, o.qty, o.price, o.transaction_id, o.created_at
		FROM orders o JOIN products p ON p.id = o.product_id
		WHERE o.transaction_id = $1 ORDER BY o.id`
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates an order repository backed by PostgreSQL.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Materialize(ctx context.Context, tx *sql.Tx, customerID, transactionID uuid.UUID, productIDs []int64) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	res, err := tx.ExecContext(ctx, materializeSQL, customerID, transactionID, pq.Array(productIDs))
	if err != nil {
		return 0, fmt.Errorf("materialize orders: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("materialize orders: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	return r.list(ctx, listByCustomerSQL, customerID)
}

func (r *postgresRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Order, error) {
	return r.list(ctx, listByTransactionSQL, transactionID)
}

func (r *postgresRepository) list(ctx context.Context, query string, arg interface{}) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.ProductName, &o.Qty, &o.Price, &o.TransactionID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
