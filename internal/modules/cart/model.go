package cart

import (
	"time"

	"github.com/google/uuid"
)

// Line is one product entry in a customer's cart. Stock for the full
// quantity is already reserved while the line exists.
type Line struct {
	CustomerID uuid.UUID `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Qty        int       `json:"qty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LineView is a cart line joined with its product for display and for
// pricing at checkout.
type LineView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Img       string `json:"img"`
	Qty       int    `json:"qty"`
	Subtotal  int64  `json:"subtotal"`
}
