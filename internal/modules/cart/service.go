package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/konnco/store-backend/internal/modules/inventory"
)

// ErrQtyTooLow is returned when a requested quantity does not exceed the
// configured minimum.
var ErrQtyTooLow = errors.New("quantity below minimum")

// Service defines the interface for cart business logic. Every mutation
// adjusts the stock reservation in the same database transaction as the
// cart line, so the cart can never hold more than is reserved.
type Service interface {
	Add(ctx context.Context, customerID uuid.UUID, productID int64, qty int) error
	UpdateQty(ctx context.Context, customerID uuid.UUID, productID int64, qty int) error
	Remove(ctx context.Context, customerID uuid.UUID, productID int64) error
	List(ctx context.Context, customerID uuid.UUID) ([]LineView, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger inventory.Ledger
	minQty int
}

// NewService creates a new cart service. Quantities must be at least
// minQty.
func NewService(db *sql.DB, repo Repository, ledger inventory.Ledger, minQty int) Service {
	return &service{db: db, repo: repo, ledger: ledger, minQty: minQty}
}

func (s *service) Add(ctx context.Context, customerID uuid.UUID, productID int64, qty int) error {
	if qty < s.minQty {
		return ErrQtyTooLow
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.ledger.Reserve(ctx, tx, productID, qty); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, tx, customerID, productID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) UpdateQty(ctx context.Context, customerID uuid.UUID, productID int64, qty int) error {
	if qty < s.minQty {
		return ErrQtyTooLow
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := s.repo.GetQtyForUpdate(ctx, tx, customerID, productID)
	if err != nil {
		return err
	}
	switch {
	case qty > current:
		if err := s.ledger.Reserve(ctx, tx, productID, qty-current); err != nil {
			return err
		}
	case qty < current:
		if err := s.ledger.Release(ctx, tx, productID, current-qty); err != nil {
			return err
		}
	default:
		return nil
	}
	if err := s.repo.SetQty(ctx, tx, customerID, productID, qty); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Remove(ctx context.Context, customerID uuid.UUID, productID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qty, err := s.repo.GetQtyForUpdate(ctx, tx, customerID, productID)
	if err != nil {
		return err
	}
	if err := s.ledger.Release(ctx, tx, productID, qty); err != nil {
		return err
	}
	if err := s.repo.DeleteLine(ctx, tx, customerID, productID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]LineView, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
