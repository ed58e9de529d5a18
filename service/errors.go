// file: service/errors.go

package service

import (
	"errors"

	"github.com/lib/pq"
)

// Business errors raised by the ledger engines and the query façade. Handlers
// map these to HTTP status codes; anything else is a storage failure and
// surfaces as a generic 500.
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSenderNotFound    = errors.New("sender customer not found")
	ErrReceiverNotFound  = errors.New("receiver customer not found")
	ErrSelfTransfer      = errors.New("cannot transfer money to the same customer")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNameTooShort      = errors.New("customer name must be at least 3 characters")
	ErrNegativeBalance   = errors.New("starting balance cannot be negative")
	ErrConflict          = errors.New("concurrent update conflict, please retry")

	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Postgres error codes that indicate transaction contention rather than a
// real storage fault. Safe for the caller to retry.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// translateStoreError maps contention errors from the driver to the
// retryable ErrConflict; everything else passes through unchanged.
func translateStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqSerializationFailure, pqDeadlockDetected:
			return ErrConflict
		}
	}
	return err
}
