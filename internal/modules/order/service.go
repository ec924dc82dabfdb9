package order

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for order reads. Writes happen through
// Repository.Materialize during transaction resolution.
type Service interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Order, error) {
	return s.repo.ListByTransaction(ctx, transactionID)
}
