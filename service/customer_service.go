// file: service/customer_service.go

package service

import (
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const minNameLength = 3

// CustomerService handles customer lifecycle (creation, rename) and the
// read-only query façade over the account store and the ledger entry log.
type CustomerService struct {
	customerRepo repository.ICustomerRepository
	transferRepo repository.ITransferRepository
	paymentRepo  repository.IPaymentRepository
}

func NewCustomerService(customerRepo repository.ICustomerRepository, transferRepo repository.ITransferRepository, paymentRepo repository.IPaymentRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		transferRepo: transferRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateCustomer opens a new customer account with an optional starting
// balance (zero when omitted).
func (s *CustomerService) CreateCustomer(name string, startingBalance decimal.Decimal) (*model.Customer, error) {
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, ErrNameTooShort
	}
	if startingBalance.IsNegative() {
		return nil, ErrNegativeBalance
	}

	customer := &model.Customer{
		Name:    name,
		Balance: startingBalance,
	}
	if err := s.customerRepo.CreateCustomer(customer); err != nil {
		return nil, err
	}

	logger.Log.WithField("customer_id", customer.ID).Info("Customer created")
	return customer, nil
}

// RenameCustomer changes a customer's display name.
func (s *CustomerService) RenameCustomer(customerID int, newName string) error {
	if utf8.RuneCountInString(newName) < minNameLength {
		return ErrNameTooShort
	}

	if err := s.customerRepo.RenameCustomer(customerID, newName); err != nil {
		if err == sql.ErrNoRows {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// GetCustomer retrieves a single customer by id.
func (s *CustomerService) GetCustomer(customerID int) (*model.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves all customers, ordered by id ascending.
func (s *CustomerService) ListCustomers() ([]*model.Customer, error) {
	return s.customerRepo.GetAllCustomers()
}

// ListTransfersForCustomer retrieves the outgoing transfer history of one
// customer. An unknown customer id is an error, never an empty list:
// "no history" and "no such customer" are different answers.
func (s *CustomerService) ListTransfersForCustomer(customerID int) ([]*model.TransferDetail, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.transferRepo.GetTransfersByCustomerID(customerID)
}

// ListAllTransfers retrieves the global transfer feed.
func (s *CustomerService) ListAllTransfers() ([]*model.TransferDetail, error) {
	return s.transferRepo.GetAllTransfers()
}

// ListPaymentsForCustomer retrieves all payments made by one customer, with
// the same existence check as the transfer listing.
func (s *CustomerService) ListPaymentsForCustomer(customerID int) ([]*model.Payment, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetPaymentsByCustomerID(customerID)
}
