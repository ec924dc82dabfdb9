package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/konnco/store-backend/internal/modules/customer"
)

type fakeCustomerRepo struct {
	c *customer.Customer
}

func (f *fakeCustomerRepo) Create(context.Context, *customer.Customer) error { return nil }

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	if f.c == nil || f.c.ID != id {
		return nil, customer.ErrNotFound
	}
	return f.c, nil
}

func (f *fakeCustomerRepo) GetByUsernameOrEmail(_ context.Context, identity string) (*customer.Customer, error) {
	if f.c == nil || (f.c.Username != identity && f.c.Email != identity) {
		return nil, customer.ErrNotFound
	}
	return f.c, nil
}

type fakeAdminRepo struct {
	a *customer.Admin
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*customer.Admin, error) {
	if f.a == nil || f.a.Username != username {
		return nil, customer.ErrNotFound
	}
	return f.a, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestCustomerLogin_TokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	c := &customer.Customer{
		ID:           uuid.New(),
		Username:     "budi",
		Email:        "budi@example.com",
		PasswordHash: hashPassword(t, "sup3rsecret"),
	}
	svc := NewService(&fakeCustomerRepo{c: c}, &fakeAdminRepo{}, secret)

	token, err := svc.CustomerLogin(context.Background(), "budi", "sup3rsecret")
	if err != nil {
		t.Fatalf("CustomerLogin: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != c.ID.String() {
		t.Errorf("user id = %s, want %s", claims.UserID, c.ID)
	}
	if claims.AdminID != "" {
		t.Errorf("unexpected admin id %s", claims.AdminID)
	}
}

func TestCustomerLogin_ByEmail(t *testing.T) {
	c := &customer.Customer{
		ID:           uuid.New(),
		Username:     "budi",
		Email:        "budi@example.com",
		PasswordHash: hashPassword(t, "sup3rsecret"),
	}
	svc := NewService(&fakeCustomerRepo{c: c}, &fakeAdminRepo{}, []byte("test-secret"))

	if _, err := svc.CustomerLogin(context.Background(), "budi@example.com", "sup3rsecret"); err != nil {
		t.Fatalf("CustomerLogin by email: %v", err)
	}
}

func TestCustomerLogin_WrongPassword(t *testing.T) {
	c := &customer.Customer{
		ID:           uuid.New(),
		Username:     "budi",
		PasswordHash: hashPassword(t, "sup3rsecret"),
	}
	svc := NewService(&fakeCustomerRepo{c: c}, &fakeAdminRepo{}, []byte("test-secret"))

	_, err := svc.CustomerLogin(context.Background(), "budi", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestCustomerLogin_UnknownUser(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeAdminRepo{}, []byte("test-secret"))

	_, err := svc.CustomerLogin(context.Background(), "nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLogin_SetsAdminClaim(t *testing.T) {
	secret := []byte("test-secret")
	a := &customer.Admin{
		ID:           uuid.New(),
		Username:     "root",
		PasswordHash: hashPassword(t, "adminpass"),
	}
	svc := NewService(&fakeCustomerRepo{}, &fakeAdminRepo{a: a}, secret)

	token, err := svc.AdminLogin(context.Background(), "root", "adminpass")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.AdminID != a.ID.String() {
		t.Errorf("admin id = %s, want %s", claims.AdminID, a.ID)
	}
	if claims.UserID != "" {
		t.Errorf("unexpected user id %s", claims.UserID)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	c := &customer.Customer{
		ID:           uuid.New(),
		Username:     "budi",
		PasswordHash: hashPassword(t, "sup3rsecret"),
	}
	svc := NewService(&fakeCustomerRepo{c: c}, &fakeAdminRepo{}, []byte("test-secret"))

	token, err := svc.CustomerLogin(context.Background(), "budi", "sup3rsecret")
	if err != nil {
		t.Fatalf("CustomerLogin: %v", err)
	}
	if _, err := ParseToken(token, []byte("other-secret")); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}
