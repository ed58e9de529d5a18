package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a ledger account: a named holder of a single-currency balance.
// The balance is never negative and is only ever changed inside a committed
// ledger operation.
type Customer struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
