package customer

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/konnco/store-backend/internal/validation"
)

// Service defines customer account business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*Customer, error)
}

// RegisterRequest holds the data for creating a customer account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (r RegisterRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	errs = validation.MinLen(errs, "username", r.Username, 4)
	errs = validation.MaxLen(errs, "username", r.Username, 20)
	errs = validation.MinLen(errs, "password", r.Password, 8)
	errs = validation.MinLen(errs, "name", r.Name, 3)
	errs = validation.Email(errs, "email", r.Email)
	errs = validation.Phone(errs, "phone", r.Phone)
	errs = validation.Required(errs, "address", r.Address)
	return errs
}

type service struct{ repo Repository }

// NewService creates a customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := &Customer{
		ID:           uuid.New(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}
