package catalog

import "time"

// Product is an item in the store catalog. Price is in minor currency units.
// Stock is never written here directly — reservation and release go through
// the inventory ledger so the count can only move atomically.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Img         string    `json:"img,omitempty"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
