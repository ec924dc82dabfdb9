package catalog

import (
	"context"

	"github.com/konnco/store-backend/internal/validation"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListAvailableProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error)
	SetStock(ctx context.Context, id int64, stock int) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Img         string `json:"img"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"is_available"`
}

func (r CreateProductRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	errs = validation.Required(errs, "name", r.Name)
	errs = validation.Min(errs, "price", r.Price, 0)
	errs = validation.Min(errs, "stock", int64(r.Stock), 0)
	return errs
}

// UpdateProductRequest holds a partial product update. Nil fields are kept.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Img         *string `json:"img"`
	IsAvailable *bool   `json:"is_available"`
}

func (r UpdateProductRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Name != nil {
		errs = validation.Required(errs, "name", *r.Name)
	}
	if r.Price != nil {
		errs = validation.Min(errs, "price", *r.Price, 0)
	}
	return errs
}

type service struct {
	repo  Repository
	cache *ListingCache
}

// NewService creates a catalog service. cache may be nil when redis is not
// configured.
func NewService(repo Repository, cache *ListingCache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	p := &Product{
		Name:        req.Name,
		Price:       req.Price,
		Img:         req.Img,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, false)
}

func (s *service) ListAvailableProducts(ctx context.Context) ([]*Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}
	products, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, products)
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Img != nil {
		p.Img = *req.Img
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func (s *service) SetStock(ctx context.Context, id int64, stock int) error {
	if err := s.repo.SetStock(ctx, id, stock); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
