package sale

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a product quantity sold at the counter. TotalAmount is
// frozen at creation (unit_price * quantity); the only mutation allowed
// afterwards is the payment-status flip.
type Sale struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	ProductID   uuid.UUID  `json:"product_id"`
	RentalID    *uuid.UUID `json:"rental_id,omitempty"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	WorkerID    *uuid.UUID `json:"worker_id,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	TotalAmount float64    `json:"total_amount"`
	IsPaid      bool       `json:"is_paid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateSaleRequest is the payload for recording a sale. An unpaid sale is
// a fiado and requires a client who permits credit.
type CreateSaleRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	RentalID  string `json:"rental_id,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	IsPaid    *bool  `json:"is_paid,omitempty"` // defaults to true
}
