package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines customer data storage.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*Customer, error)
}

// AdminRepository defines admin account lookup.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
}
