package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/konnco/store-backend/internal/modules/inventory"
)

const (
	reservePattern = `UPDATE products SET stock = stock -`
	releasePattern = `UPDATE products SET stock = stock \+`
	existsPattern  = `SELECT EXISTS`
)

func newTestService(t *testing.T) (Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db, NewPostgresRepository(db), inventory.NewPostgresLedger(), 1), mock
}

func TestAdd_ReservesAndStoresLine(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(reservePattern).
		WithArgs(int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO cart_lines`).
		WithArgs(customerID, int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Add(context.Background(), customerID, 7, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAdd_OutOfStockRollsBack(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(reservePattern).
		WithArgs(int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(existsPattern).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := svc.Add(context.Background(), customerID, 7, 3)
	if !errors.Is(err, inventory.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAdd_QtyBelowMinimumRejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Add(context.Background(), uuid.New(), 7, 0)
	if !errors.Is(err, ErrQtyTooLow) {
		t.Fatalf("want ErrQtyTooLow, got %v", err)
	}
}

func TestUpdateQty_RaiseReservesDifference(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT qty FROM cart_lines`).
		WithArgs(customerID, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(2))
	mock.ExpectExec(reservePattern).
		WithArgs(int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE cart_lines SET qty`).
		WithArgs(customerID, int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.UpdateQty(context.Background(), customerID, 7, 5); err != nil {
		t.Fatalf("UpdateQty: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateQty_LowerReleasesDifference(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT qty FROM cart_lines`).
		WithArgs(customerID, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(3))
	mock.ExpectExec(releasePattern).
		WithArgs(int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE cart_lines SET qty`).
		WithArgs(customerID, int64(7), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.UpdateQty(context.Background(), customerID, 7, 1); err != nil {
		t.Fatalf("UpdateQty: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateQty_MissingLine(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT qty FROM cart_lines`).
		WithArgs(customerID, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}))
	mock.ExpectRollback()

	err := svc.UpdateQty(context.Background(), customerID, 7, 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestClear_DeletesOnlyListedLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cart_lines WHERE customer_id = \$1 AND product_id = ANY\(\$2\)`).
		WithArgs(customerID, pq.Array([]int64{1, 5})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, _ := db.Begin()
	if err := repo.Clear(context.Background(), tx, customerID, []int64{1, 5}); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestClear_NoLinesIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, _ := db.Begin()
	if err := repo.Clear(context.Background(), tx, uuid.New(), nil); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRemove_ReleasesFullQuantity(t *testing.T) {
	svc, mock := newTestService(t)
	customerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT qty FROM cart_lines`).
		WithArgs(customerID, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(4))
	mock.ExpectExec(releasePattern).
		WithArgs(int64(7), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_lines`).
		WithArgs(customerID, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Remove(context.Background(), customerID, 7); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
