package service

import (
	"context"
	"database/sql"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CashService is the cash-movement engine: deposits, withdrawals, and
// outbound payments. Single-customer variant of the transfer engine — one row
// lock, one balance write, and for payments an additional log append, all in
// one database transaction.
type CashService struct {
	db           *sql.DB
	customerRepo repository.ICustomerRepository
	paymentRepo  repository.IPaymentRepository
}

func NewCashService(db *sql.DB, customerRepo repository.ICustomerRepository, paymentRepo repository.IPaymentRepository) *CashService {
	return &CashService{
		db:           db,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// Deposit credits amount to the customer's balance and returns the updated
// customer. Deposits are not logged; payments are the audited form of cash
// movement.
func (s *CashService) Deposit(ctx context.Context, customerID int, amount decimal.Decimal) (*model.Customer, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id": customerID,
		"amount":      amount,
	})
	log.Info("Starting deposit")

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	customer, err := s.mutateBalance(ctx, customerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(amount), nil
	}, nil)
	if err != nil {
		return nil, err
	}

	log.Info("Deposit completed successfully")
	return customer, nil
}

// Withdraw debits amount from the customer's balance and returns the updated
// customer. The balance can reach exactly zero but never go below it.
func (s *CashService) Withdraw(ctx context.Context, customerID int, amount decimal.Decimal) (*model.Customer, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id": customerID,
		"amount":      amount,
	})
	log.Info("Starting withdrawal")

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	customer, err := s.mutateBalance(ctx, customerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if amount.GreaterThan(balance) {
			return decimal.Zero, ErrInsufficientFunds
		}
		return balance.Sub(amount), nil
	}, nil)
	if err != nil {
		return nil, err
	}

	log.Info("Withdrawal completed successfully")
	return customer, nil
}

// CreatePayment debits the customer and appends the payment record in the
// same atomic unit. The funds check happens before anything touches the log.
func (s *CashService) CreatePayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":   req.CustomerID,
		"amount":        req.Amount,
		"receiver_code": req.ReceiverCode,
	})
	log.Info("Starting payment")

	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payment := &model.Payment{
		CustomerID:   req.CustomerID,
		Amount:       req.Amount,
		ReceiverCode: req.ReceiverCode,
		Reference:    req.Reference,
		Note:         req.Note,
	}

	_, err := s.mutateBalance(ctx, req.CustomerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if req.Amount.GreaterThan(balance) {
			return decimal.Zero, ErrInsufficientFunds
		}
		return balance.Sub(req.Amount), nil
	}, func(tx *sql.Tx) error {
		return s.paymentRepo.CreatePayment(tx, payment)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("payment_id", payment.ID).Info("Payment completed successfully")
	return payment, nil
}

// mutateBalance runs one atomic read-modify-write on a customer's balance.
// The row lock is taken before compute runs, so the new balance is always
// derived from a value no concurrent operation can change until we commit.
// extra, when non-nil, runs inside the same transaction after the balance
// write.
func (s *CashService) mutateBalance(ctx context.Context, customerID int, compute func(decimal.Decimal) (decimal.Decimal, error), extra func(*sql.Tx) error) (*model.Customer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	customer, err := s.customerRepo.GetCustomerForUpdate(tx, customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, translateStoreError(err)
	}

	newBalance, err := compute(customer.Balance)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.UpdateCustomerBalance(tx, customerID, newBalance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", translateStoreError(err))
	}

	if extra != nil {
		if err := extra(tx); err != nil {
			return nil, translateStoreError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", translateStoreError(err))
	}

	customer.Balance = newBalance
	return customer, nil
}
