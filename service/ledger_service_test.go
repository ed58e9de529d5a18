// service/ledger_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// MockCustomerRepository is a mock for ICustomerRepository.
type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) CreateCustomer(customer *model.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}
func (m *MockCustomerRepository) GetCustomerByID(id int) (*model.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) GetAllCustomers() ([]*model.Customer, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) GetCustomerForUpdate(tx *sql.Tx, id int) (*model.Customer, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}
func (m *MockCustomerRepository) UpdateCustomerBalance(tx *sql.Tx, id int, newBalance decimal.Decimal) error {
	args := m.Called(tx, id, newBalance)
	return args.Error(0)
}
func (m *MockCustomerRepository) RenameCustomer(id int, newName string) error {
	args := m.Called(id, newName)
	return args.Error(0)
}

// MockTransferRepository is a mock for ITransferRepository.
type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) CreateTransfer(tx *sql.Tx, transfer *model.Transfer) error {
	args := m.Called(tx, transfer)
	return args.Error(0)
}
func (m *MockTransferRepository) GetTransfersByCustomerID(customerID int) ([]*model.TransferDetail, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TransferDetail), args.Error(1)
}
func (m *MockTransferRepository) GetAllTransfers() ([]*model.TransferDetail, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TransferDetail), args.Error(1)
}

// balanceEq matches an UpdateCustomerBalance argument against an expected
// decimal value regardless of internal representation.
func balanceEq(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestLedgerService_Transfer(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	newService := func(t *testing.T) (*LedgerService, sqlmock.Sqlmock, *MockCustomerRepository, *MockTransferRepository) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mockCustomerRepo := new(MockCustomerRepository)
		mockTransferRepo := new(MockTransferRepository)
		return NewLedgerService(db, mockCustomerRepo, mockTransferRepo), dbMock, mockCustomerRepo, mockTransferRepo
	}

	t.Run("success", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		fromCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(500)}
		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 1, balanceEq("400")).Return(nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 2, balanceEq("300")).Return(nil).Once()
		mockTransferRepo.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).Return(nil).Once()
		dbMock.ExpectCommit()

		transfer, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.NoError(t, err)
		assert.NotNil(t, transfer)
		assert.Equal(t, 1, transfer.FromID)
		assert.Equal(t, 2, transfer.ToID)
		assert.True(t, transfer.Amount.Equal(amount))
		mockCustomerRepo.AssertExpectations(t)
		mockTransferRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("self transfer", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, _ := newService(t)

		_, err := ledgerService.Transfer(ctx, 7, 7, amount)

		assert.Equal(t, ErrSelfTransfer, err)
		mockCustomerRepo.AssertNotCalled(t, "GetCustomerForUpdate")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		ledgerService, _, _, _ := newService(t)

		_, err := ledgerService.Transfer(ctx, 1, 2, decimal.Zero)
		assert.Equal(t, ErrInvalidAmount, err)

		_, err = ledgerService.Transfer(ctx, 1, 2, decimal.NewFromInt(-5))
		assert.Equal(t, ErrInvalidAmount, err)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		poorCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(50)}
		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(poorCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		dbMock.ExpectRollback()

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.Equal(t, ErrInsufficientFunds, err)
		mockCustomerRepo.AssertNotCalled(t, "UpdateCustomerBalance")
		mockTransferRepo.AssertNotCalled(t, "CreateTransfer")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("sender not found", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, _ := newService(t)

		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(nil, sql.ErrNoRows).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		dbMock.ExpectRollback()

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.Equal(t, ErrSenderNotFound, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("receiver not found", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, _ := newService(t)

		fromCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(500)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(nil, sql.ErrNoRows).Once()
		dbMock.ExpectRollback()

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.Equal(t, ErrReceiverNotFound, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("locks are acquired in ascending id order", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		// Transfer direction is high id -> low id; the lower id must still
		// be locked first.
		fromCustomer := &model.Customer{ID: 9, Name: "Ines", Balance: decimal.NewFromInt(500)}
		toCustomer := &model.Customer{ID: 3, Name: "Tom", Balance: decimal.NewFromInt(10)}

		var lockOrder []int
		record := func(args mock.Arguments) { lockOrder = append(lockOrder, args.Int(1)) }

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 3).Run(record).Return(toCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 9).Run(record).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 9, balanceEq("400")).Return(nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 3, balanceEq("110")).Return(nil).Once()
		mockTransferRepo.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).Return(nil).Once()
		dbMock.ExpectCommit()

		_, err := ledgerService.Transfer(ctx, 9, 3, amount)

		assert.NoError(t, err)
		assert.Equal(t, []int{3, 9}, lockOrder)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		fromCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(500)}
		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 1, balanceEq("400")).Return(nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 2, balanceEq("300")).Return(nil).Once()
		mockTransferRepo.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).Return(nil).Once()
		dbMock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.Error(t, err)
		mockCustomerRepo.AssertExpectations(t)
		mockTransferRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("serialization failure on commit surfaces as a conflict", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		fromCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(500)}
		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 1, balanceEq("400")).Return(nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 2, balanceEq("300")).Return(nil).Once()
		mockTransferRepo.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).Return(nil).Once()
		dbMock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("deadlock on transfer record insert surfaces as a conflict", func(t *testing.T) {
		ledgerService, dbMock, mockCustomerRepo, mockTransferRepo := newService(t)

		fromCustomer := &model.Customer{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(500)}
		toCustomer := &model.Customer{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 1).Return(fromCustomer, nil).Once()
		mockCustomerRepo.On("GetCustomerForUpdate", mock.Anything, 2).Return(toCustomer, nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 1, balanceEq("400")).Return(nil).Once()
		mockCustomerRepo.On("UpdateCustomerBalance", mock.Anything, 2, balanceEq("300")).Return(nil).Once()
		mockTransferRepo.On("CreateTransfer", mock.Anything, mock.AnythingOfType("*model.Transfer")).
			Return(&pq.Error{Code: "40P01"}).Once()
		dbMock.ExpectRollback()

		_, err := ledgerService.Transfer(ctx, 1, 2, amount)

		assert.ErrorIs(t, err, ErrConflict)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
