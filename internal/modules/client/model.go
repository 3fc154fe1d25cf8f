package client

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer of a billiard hall. PermitirFiado gates whether
// unpaid (credit) sales and rentals are accepted for them.
type Client struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	PermitirFiado bool      `json:"permitir_fiado"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Debt summarizes everything a client owes.
type Debt struct {
	ClientID      uuid.UUID `json:"client_id"`
	UnpaidSales   float64   `json:"unpaid_sales"`
	UnpaidRentals float64   `json:"unpaid_rentals"`
	Total         float64   `json:"total"`
	SaleCount     int       `json:"sale_count"`
	RentalCount   int       `json:"rental_count"`
}

// CreateClientRequest is the payload for registering a client.
type CreateClientRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	PermitirFiado bool   `json:"permitir_fiado"`
}

// UpdateClientRequest is the payload for editing a client.
type UpdateClientRequest struct {
	Name          string `json:"name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	PermitirFiado *bool  `json:"permitir_fiado,omitempty"`
}
