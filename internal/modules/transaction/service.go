package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/konnco/store-backend/internal/modules/cart"
	"github.com/konnco/store-backend/internal/modules/customer"
	"github.com/konnco/store-backend/internal/modules/inventory"
	"github.com/konnco/store-backend/internal/modules/order"
	"github.com/konnco/store-backend/internal/modules/payment"
)

// Service defines the interface for the transaction lifecycle: checkout
// creates a PENDING transaction, and exactly one resolution moves it to
// APPROVED or CANCELLED.
type Service interface {
	Checkout(ctx context.Context, customerID uuid.UUID) (*CheckoutResult, error)
	Get(ctx context.Context, midtransOrderID string) (*Transaction, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error)
	// Resolve settles a transaction. Repeating a resolution with the same
	// outcome is a no-op; a conflicting outcome returns ErrInvalidState.
	Resolve(ctx context.Context, midtransOrderID string, outcome Status) (*Transaction, error)
	// HandleNotification applies a provider webhook payload.
	HandleNotification(ctx context.Context, midtransOrderID, transactionStatus string) (*Transaction, error)
	// SyncStatus polls the provider and resolves the transaction if the
	// payment has settled or failed.
	SyncStatus(ctx context.Context, midtransOrderID string) (*Transaction, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	carts     cart.Repository
	orders    order.Repository
	ledger    inventory.Ledger
	customers customer.Repository
	gateway   payment.Gateway
}

// NewService wires the transaction service. Resolution touches the cart,
// the stock ledger and the orders table in one database transaction.
func NewService(db *sql.DB, repo Repository, carts cart.Repository, orders order.Repository,
	ledger inventory.Ledger, customers customer.Repository, gateway payment.Gateway) Service {
	return &service{
		db:        db,
		repo:      repo,
		carts:     carts,
		orders:    orders,
		ledger:    ledger,
		customers: customers,
		gateway:   gateway,
	}
}

func (s *service) Checkout(ctx context.Context, customerID uuid.UUID) (*CheckoutResult, error) {
	views, err := s.carts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrEmptyCart
	}

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var amount int64
	items := make([]payment.Item, 0, len(views))
	for _, v := range views {
		amount += v.Subtotal
		items = append(items, payment.Item{
			ID:    strconv.FormatInt(v.ProductID, 10),
			Name:  v.Name,
			Price: v.Price,
			Qty:   v.Qty,
		})
	}

	id := uuid.New()
	orderID := "ORDER-" + id.String()

	// The provider is called before anything is persisted: a gateway
	// failure must not leave a PENDING row holding the cart hostage.
	session, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		OrderID:     orderID,
		GrossAmount: amount,
		Items:       items,
		Customer: payment.Customer{
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
		},
	})
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		ID:              id,
		CustomerID:      customerID,
		MidtransOrderID: orderID,
		Amount:          amount,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return &CheckoutResult{Transaction: *t, Token: session.Token, RedirectURL: session.RedirectURL}, nil
}

func (s *service) Get(ctx context.Context, midtransOrderID string) (*Transaction, error) {
	return s.repo.GetByOrderID(ctx, midtransOrderID)
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) Resolve(ctx context.Context, midtransOrderID string, outcome Status) (*Transaction, error) {
	if outcome != StatusApproved && outcome != StatusCancelled {
		return nil, fmt.Errorf("resolve to %s: %w", outcome, ErrInvalidState)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	t, ok, err := s.repo.Transition(ctx, tx, midtransOrderID, outcome)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else resolved it, or it never existed. Re-read outside
		// the transaction to tell the cases apart.
		tx.Rollback()
		current, err := s.repo.GetByOrderID(ctx, midtransOrderID)
		if err != nil {
			return nil, err
		}
		if current.Status == outcome {
			return current, nil
		}
		return nil, fmt.Errorf("transaction %s is %s: %w", midtransOrderID, current.Status, ErrInvalidState)
	}

	// When a customer raced two checkouts, the first resolution consumed
	// the cart; this one then sees zero lines and settles with no orders
	// and no releases.
	lines, err := s.carts.ListForUpdate(ctx, tx, t.CustomerID)
	if err != nil {
		return nil, err
	}

	// Everything below is scoped to the locked lines. A line added and
	// committed after the snapshot keeps its cart row and reservation;
	// deleting it here would strand the reserved stock.
	productIDs := make([]int64, 0, len(lines))
	for _, l := range lines {
		productIDs = append(productIDs, l.ProductID)
	}

	if outcome == StatusApproved {
		if _, err := s.orders.Materialize(ctx, tx, t.CustomerID, t.ID, productIDs); err != nil {
			return nil, err
		}
	} else {
		for _, l := range lines {
			if err := s.ledger.Release(ctx, tx, l.ProductID, l.Qty); err != nil {
				return nil, err
			}
		}
	}
	if err := s.carts.Clear(ctx, tx, t.CustomerID, productIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit resolve: %w", err)
	}
	return t, nil
}

func (s *service) HandleNotification(ctx context.Context, midtransOrderID, transactionStatus string) (*Transaction, error) {
	// The webhook body is caller-supplied and unauthenticated; the claimed
	// status is only a hint. Any definitive claim is re-checked against the
	// provider before a state change happens.
	if payment.MapStatus(transactionStatus) == payment.StatusPending {
		return s.repo.GetByOrderID(ctx, midtransOrderID)
	}
	return s.SyncStatus(ctx, midtransOrderID)
}

func (s *service) SyncStatus(ctx context.Context, midtransOrderID string) (*Transaction, error) {
	t, err := s.repo.GetByOrderID(ctx, midtransOrderID)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusPending {
		return t, nil
	}
	status, err := s.gateway.QueryStatus(ctx, midtransOrderID)
	if err != nil {
		return nil, err
	}
	switch status {
	case payment.StatusSuccess:
		return s.Resolve(ctx, midtransOrderID, StatusApproved)
	case payment.StatusFailure:
		return s.Resolve(ctx, midtransOrderID, StatusCancelled)
	default:
		return t, nil
	}
}
