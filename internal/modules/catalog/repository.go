package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, availableOnly bool) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, id int64, stock int) error
	Delete(ctx context.Context, id int64) error
}
