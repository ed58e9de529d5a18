package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is an immutable record of funds moved between two customers.
// Rows are append-only: never updated, never deleted.
type Transfer struct {
	ID        int             `json:"id"`
	FromID    int             `json:"from_id"`
	ToID      int             `json:"to_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransferDetail is a Transfer enriched with customer names for display.
// ToName is always set; FromName only in the global feed.
type TransferDetail struct {
	ID        int             `json:"id"`
	FromID    int             `json:"from_id"`
	FromName  string          `json:"from_name,omitempty"`
	ToID      int             `json:"to_id"`
	ToName    string          `json:"to_name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
