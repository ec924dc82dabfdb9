package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a cart line does not exist.
var ErrNotFound = errors.New("cart line not found")

const (
	getQtySQL = `SELECT qty FROM cart_lines WHERE customer_id = $1 AND product_id = $2 FOR UPDATE`
	upsertSQL = `INSERT INTO cart_lines (customer_id, product_id, qty, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET qty = cart_lines.qty + EXCLUDED.qty, updated_at = NOW()`
	setQtySQL = `UPDATE cart_lines SET qty = $3, updated_at = NOW() WHERE customer_id = $1 AND product_id = $2`
	deleteSQL = `DELETE FROM cart_lines WHERE customer_id = $1 AND product_id = $2`
	listSQL   = `SELECT product_id, qty FROM cart_lines WHERE customer_id = $1 ORDER BY product_id FOR UPDATE`
	clearSQL  = `DELETE FROM cart_lines WHERE customer_id = $1 AND product_id = ANY($2)`
	viewSQL   = `SELECT c.product_id, p.name, p.price, p.img, c.qty
		FROM cart_lines c JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1 ORDER BY c.product_id`
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a cart repository backed by PostgreSQL.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetQtyForUpdate(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64) (int, error) {
	var qty int
	err := tx.QueryRowContext(ctx, getQtySQL, customerID, productID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get cart line: %w", err)
	}
	return qty, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64, qty int) error {
	if _, err := tx.ExecContext(ctx, upsertSQL, customerID, productID, qty); err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetQty(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64, qty int) error {
	res, err := tx.ExecContext(ctx, setQtySQL, customerID, productID, qty)
	if err != nil {
		return fmt.Errorf("set cart qty: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set cart qty: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteLine(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productID int64) error {
	res, err := tx.ExecContext(ctx, deleteSQL, customerID, productID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) ListForUpdate(ctx context.Context, tx *sql.Tx, customerID uuid.UUID) ([]Line, error) {
	rows, err := tx.QueryContext(ctx, listSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		l := Line{CustomerID: customerID}
		if err := rows.Scan(&l.ProductID, &l.Qty); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	return lines, nil
}

func (r *postgresRepository) Clear(ctx context.Context, tx *sql.Tx, customerID uuid.UUID, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, clearSQL, customerID, pq.Array(productIDs)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]LineView, error) {
	rows, err := r.db.QueryContext(ctx, viewSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	var views []LineView
	for rows.Next() {
		var v LineView
		if err := rows.Scan(&v.ProductID, &v.Name, &v.Price, &v.Img, &v.Qty); err != nil {
			return nil, fmt.Errorf("scan cart view: %w", err)
		}
		v.Subtotal = v.Price * int64(v.Qty)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return views, nil
}
