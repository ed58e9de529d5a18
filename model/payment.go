package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable record of funds paid from a customer to an
// external payee, identified by ReceiverCode.
type Payment struct {
	ID           int             `json:"id"`
	CustomerID   int             `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	ReceiverCode string          `json:"receiver_code"`
	Reference    string          `json:"reference"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
