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

// LedgerService is the transfer engine. Every transfer runs as a single
// database transaction: both customer rows are locked, the balance check is
// evaluated against the locked rows, and the debit, credit, and transfer
// record commit together or not at all.
type LedgerService struct {
	db           *sql.DB
	customerRepo repository.ICustomerRepository
	transferRepo repository.ITransferRepository
}

func NewLedgerService(db *sql.DB, customerRepo repository.ICustomerRepository, transferRepo repository.ITransferRepository) *LedgerService {
	return &LedgerService{
		db:           db,
		customerRepo: customerRepo,
		transferRepo: transferRepo,
	}
}

// Transfer moves amount from one customer to another.
//
// Rejections, in order: self-transfer, non-positive amount, missing sender,
// insufficient funds, missing receiver. Row locks are taken in ascending
// customer-id order regardless of transfer direction so that two opposing
// transfers can never deadlock; the checks still run in the order above.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) (*model.Transfer, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_id": fromID,
		"to_id":   toID,
		"amount":  amount,
	})
	log.Info("Starting transfer")

	if fromID == toID {
		return nil, ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	fromAccount, toAccount, fromErr, toErr := s.lockBoth(tx, fromID, toID)

	if fromErr != nil && fromErr != sql.ErrNoRows {
		return nil, translateStoreError(fromErr)
	}
	if toErr != nil && toErr != sql.ErrNoRows {
		return nil, translateStoreError(toErr)
	}
	if fromErr == sql.ErrNoRows {
		return nil, ErrSenderNotFound
	}
	if amount.GreaterThan(fromAccount.Balance) {
		return nil, ErrInsufficientFunds
	}
	if toErr == sql.ErrNoRows {
		return nil, ErrReceiverNotFound
	}

	if err := s.customerRepo.UpdateCustomerBalance(tx, fromAccount.ID, fromAccount.Balance.Sub(amount)); err != nil {
		return nil, fmt.Errorf("could not update sender balance: %w", translateStoreError(err))
	}
	if err := s.customerRepo.UpdateCustomerBalance(tx, toAccount.ID, toAccount.Balance.Add(amount)); err != nil {
		return nil, fmt.Errorf("could not update receiver balance: %w", translateStoreError(err))
	}

	transfer := &model.Transfer{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
	}
	if err := s.transferRepo.CreateTransfer(tx, transfer); err != nil {
		return nil, fmt.Errorf("could not create transfer record: %w", translateStoreError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", translateStoreError(err))
	}

	log.WithField("transfer_id", transfer.ID).Info("Transfer completed successfully")
	return transfer, nil
}

// lockBoth acquires FOR UPDATE locks on both customer rows in ascending id
// order and returns the loaded rows keyed back to their transfer roles. A
// missing row produces sql.ErrNoRows for that role without aborting the
// other lookup.
func (s *LedgerService) lockBoth(tx *sql.Tx, fromID, toID int) (fromAccount, toAccount *model.Customer, fromErr, toErr error) {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	for _, id := range []int{first, second} {
		account, err := s.customerRepo.GetCustomerForUpdate(tx, id)
		if id == fromID {
			fromAccount, fromErr = account, err
		} else {
			toAccount, toErr = account, err
		}
		if err != nil && err != sql.ErrNoRows {
			// The transaction is no longer usable; skip the second lock.
			break
		}
	}
	return fromAccount, toAccount, fromErr, toErr
}
