package repository

import (
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/sirupsen/logrus"
)

// IPaymentRepository defines the contract for the payment side of the ledger
// entry log. Payments are write-once, like transfers.
type IPaymentRepository interface {
	CreatePayment(tx *sql.Tx, payment *model.Payment) error
	GetPaymentsByCustomerID(customerID int) ([]*model.Payment, error)
}

// PaymentRepository implements IPaymentRepository.
type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CreatePayment appends a payment record inside the caller's transaction and
// fills in the assigned id and creation timestamp.
func (r *PaymentRepository) CreatePayment(tx *sql.Tx, payment *model.Payment) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":   payment.CustomerID,
		"amount":        payment.Amount,
		"receiver_code": payment.ReceiverCode,
	})
	log.Info("Executing query to create a new payment record")

	query := `INSERT INTO payments (customer_id, amount, receiver_code, reference, note)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')) RETURNING id, created_at`
	err := tx.QueryRow(query, payment.CustomerID, payment.Amount, payment.ReceiverCode, payment.Reference, payment.Note).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create payment query")
		return err
	}
	return nil
}

// GetPaymentsByCustomerID retrieves all payments made by a customer, ordered
// by id ascending.
func (r *PaymentRepository) GetPaymentsByCustomerID(customerID int) ([]*model.Payment, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get payments by customer ID")

	query := `
		SELECT id, customer_id, amount, receiver_code, reference, COALESCE(note, ''), created_at
		FROM payments
		WHERE customer_id = $1
		ORDER BY id ASC`

	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for payments by customer ID")
		return nil, err
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.ReceiverCode, &p.Reference, &p.Note, &p.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan payment row")
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
