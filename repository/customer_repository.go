package repository

import (
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ICustomerRepository defines the contract for customer database operations.
// The *ForUpdate / balance methods take a *sql.Tx because they are steps of a
// larger atomic unit owned by the calling engine, never a unit of their own.
type ICustomerRepository interface {
	CreateCustomer(customer *model.Customer) error
	GetCustomerByID(id int) (*model.Customer, error)
	GetAllCustomers() ([]*model.Customer, error)
	GetCustomerForUpdate(tx *sql.Tx, id int) (*model.Customer, error)
	UpdateCustomerBalance(tx *sql.Tx, id int, newBalance decimal.Decimal) error
	RenameCustomer(id int, newName string) error
}

// CustomerRepository implements ICustomerRepository on Postgres.
type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// CreateCustomer inserts a new customer and fills in the assigned id and
// creation timestamp.
func (r *CustomerRepository) CreateCustomer(customer *model.Customer) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":             customer.Name,
		"starting_balance": customer.Balance,
	})
	log.Info("Executing query to create a new customer")

	query := `INSERT INTO customers (name, balance) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, customer.Name, customer.Balance).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create customer query")
		return err
	}
	return nil
}

// GetCustomerByID retrieves a single customer. Returns sql.ErrNoRows when the
// id does not exist.
func (r *CustomerRepository) GetCustomerByID(id int) (*model.Customer, error) {
	log := logger.Log.WithField("customer_id", id)

	customer := &model.Customer{}
	query := `SELECT id, name, balance, created_at FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&customer.ID, &customer.Name, &customer.Balance, &customer.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get customer query")
		}
		return nil, err
	}
	return customer, nil
}

// GetAllCustomers retrieves every customer, ordered by id ascending.
func (r *CustomerRepository) GetAllCustomers() ([]*model.Customer, error) {
	log := logger.Log
	log.Info("Executing query to get all customers")

	query := `SELECT id, name, balance, created_at FROM customers ORDER BY id ASC`
	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all customers")
		return nil, err
	}
	defer rows.Close()

	var customers []*model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Balance, &c.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan customer row")
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

// GetCustomerForUpdate loads a customer row and takes a row lock on it. The
// lock is held until the surrounding transaction commits or rolls back, which
// is what serializes conflicting ledger operations on the same customer.
func (r *CustomerRepository) GetCustomerForUpdate(tx *sql.Tx, id int) (*model.Customer, error) {
	log := logger.Log.WithField("customer_id", id)
	log.Info("Executing query to get customer for update")

	customer := &model.Customer{}
	query := `SELECT id, name, balance, created_at FROM customers WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, id).Scan(&customer.ID, &customer.Name, &customer.Balance, &customer.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Customer not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get customer for update query")
		}
		return nil, err
	}
	return customer, nil
}

// UpdateCustomerBalance writes a new balance inside the caller's transaction.
func (r *CustomerRepository) UpdateCustomerBalance(tx *sql.Tx, id int, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id": id,
		"new_balance": newBalance,
	})
	log.Info("Executing query to update customer balance")

	query := `UPDATE customers SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, newBalance, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update customer balance query")
		return err
	}
	return nil
}

// RenameCustomer updates the customer's name. Returns sql.ErrNoRows when the
// id does not exist.
func (r *CustomerRepository) RenameCustomer(id int, newName string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id": id,
		"new_name":    newName,
	})
	log.Info("Executing query to rename customer")

	query := `UPDATE customers SET name = $1 WHERE id = $2`
	result, err := r.DB.Exec(query, newName, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute rename customer query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
