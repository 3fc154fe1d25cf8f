package table

import (
	"time"

	"github.com/google/uuid"
)

// Table is a billiard table available for timed rental. IsAvailable flips
// to false while a rental is open and back to true when it closes; those
// flips happen only through the rental module.
type Table struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	HourlyRate  float64   `json:"hourly_rate"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTableRequest is the payload for registering a table.
type CreateTableRequest struct {
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdateTableRequest is the payload for editing a table.
type UpdateTableRequest struct {
	Name       string   `json:"name,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}
