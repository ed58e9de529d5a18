// file: model/request.go

package model

import "github.com/shopspring/decimal"

// RegisterRequest defines the payload for creating a new API user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateCustomerRequest defines the payload for opening a new customer
// account. StartingBalance defaults to zero when omitted; a negative value is
// rejected by the service.
type CreateCustomerRequest struct {
	Name            string          `json:"name" validate:"required,min=3,max=100"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
}

// RenameCustomerRequest defines the payload for renaming a customer.
type RenameCustomerRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}

// AmountRequest defines the payload for deposits and withdrawals. The
// positive-amount rule belongs to the Cash-Movement Engine, not the schema.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest defines the payload for a transfer between two customers.
type TransferRequest struct {
	FromID int             `json:"from_id" validate:"required"`
	ToID   int             `json:"to_id" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentRequest defines the payload for an outbound payment to an external
// payee.
type PaymentRequest struct {
	CustomerID   int             `json:"customer_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	ReceiverCode string          `json:"receiver_code" validate:"required"`
	Reference    string          `json:"reference" validate:"required"`
	Note         string          `json:"note"`
}
