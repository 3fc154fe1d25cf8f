package product

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType tags every stock mutation in the audit log.
type ChangeType string

const (
	ChangeInitial    ChangeType = "initial"
	ChangeIncrease   ChangeType = "increase"
	ChangeDecrease   ChangeType = "decrease"
	ChangeAdjustment ChangeType = "adjustment"
	ChangeSale       ChangeType = "sale"
)

// Product is an inventory item sold at the counter.
type Product struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockChange is one append-only audit row. For every row
// StockAfter = StockBefore + QuantityChange.
type StockChange struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	ProductID      uuid.UUID  `json:"product_id"`
	ChangeType     ChangeType `json:"change_type"`
	QuantityChange int        `json:"quantity_change"`
	StockBefore    int        `json:"stock_before"`
	StockAfter     int        `json:"stock_after"`
	Reason         string     `json:"reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateProductRequest is the payload for registering a product.
type CreateProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// UpdateProductRequest is the payload for editing a product's descriptive
// fields. Stock is never edited here; use the adjust endpoint so every
// mutation lands in the audit log.
type UpdateProductRequest struct {
	Name     string   `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// AdjustStockRequest moves stock by a signed delta, or sets an absolute
// level when NewStock is present.
type AdjustStockRequest struct {
	Delta    int    `json:"delta,omitempty"`
	NewStock *int   `json:"new_stock,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
