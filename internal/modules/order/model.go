package order

import (
	"time"

	"github.com/google/uuid"
)

// Order is one purchased product line. Orders are only written when the
// owning transaction is approved; price is captured at that moment.
type Order struct {
	ID            int64     `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Qty           int       `json:"qty"`
	Price         int64     `json:"price"`
	TransactionID uuid.UUID `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
