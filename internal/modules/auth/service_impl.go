package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/konnco/store-backend/internal/modules/customer"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload. Exactly one of UserID or AdminID is set.
type Claims struct {
	UserID  string `json:"user_id,omitempty"`
	AdminID string `json:"admin_id,omitempty"`
	jwt.StandardClaims
}

type service struct {
	customers customer.Repository
	admins    customer.AdminRepository
	secret    []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(customers customer.Repository, admins customer.AdminRepository, secret []byte) Service {
	return &service{customers: customers, admins: admins, secret: secret}
}

func (s *service) CustomerLogin(ctx context.Context, usernameOrEmail, password string) (string, error) {
	c, err := s.customers.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.sign(Claims{UserID: c.ID.String()})
}

func (s *service) AdminLogin(ctx context.Context, username, password string) (string, error) {
	a, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.sign(Claims{AdminID: a.ID.String()})
}

func (s *service) sign(claims Claims) (string, error) {
	now := time.Now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(tokenTTL).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
