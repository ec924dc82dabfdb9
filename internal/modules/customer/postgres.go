package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no customer or admin matches the lookup.
var ErrNotFound = errors.New("user not found")

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, username, name, email, phone, address, password)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Username, c.Name, c.Email, c.Phone, c.Address, c.PasswordHash)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx, customerSelect+` WHERE id=$1`, id))
}

func (r *postgresRepo) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx,
		customerSelect+` WHERE username=$1 OR email=$1`, usernameOrEmail))
}

const customerSelect = `
	SELECT id, username, name, email, phone, address, password, created_at, updated_at
	FROM customers`

func (r *postgresRepo) scan(row *sql.Row) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(&c.ID, &c.Username, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type adminPostgres struct{ db *sql.DB }

func NewAdminPostgresRepository(db *sql.DB) AdminRepository { return &adminPostgres{db: db} }

func (r *adminPostgres) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return r.scanAdmin(r.db.QueryRowContext(ctx, adminSelect+` WHERE username=$1`, username))
}

const adminSelect = `
	SELECT id, username, name, password, created_at, updated_at
	FROM admins`

func (r *adminPostgres) scanAdmin(row *sql.Row) (*Admin, error) {
	a := &Admin{}
	err := row.Scan(&a.ID, &a.Username, &a.Name, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
