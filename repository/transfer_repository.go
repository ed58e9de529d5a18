package repository

import (
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/sirupsen/logrus"
)

// ITransferRepository defines the contract for the transfer side of the
// ledger entry log. Transfers are write-once: there is no update or delete.
type ITransferRepository interface {
	CreateTransfer(tx *sql.Tx, transfer *model.Transfer) error
	GetTransfersByCustomerID(customerID int) ([]*model.TransferDetail, error)
	GetAllTransfers() ([]*model.TransferDetail, error)
}

// TransferRepository implements ITransferRepository.
type TransferRepository struct {
	DB *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{DB: db}
}

// CreateTransfer appends a transfer record inside the caller's transaction
// and fills in the assigned id and creation timestamp.
func (r *TransferRepository) CreateTransfer(tx *sql.Tx, transfer *model.Transfer) error {
	log := logger.Log.WithFields(logrus.Fields{
		"from_id": transfer.FromID,
		"to_id":   transfer.ToID,
		"amount":  transfer.Amount,
	})
	log.Info("Executing query to create a new transfer record")

	query := `INSERT INTO transfers (from_id, to_id, amount) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := tx.QueryRow(query, transfer.FromID, transfer.ToID, transfer.Amount).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transfer query")
		return err
	}
	return nil
}

// GetTransfersByCustomerID retrieves the outgoing transfers of a customer,
// enriched with the receiver's name, ordered by id ascending.
func (r *TransferRepository) GetTransfersByCustomerID(customerID int) ([]*model.TransferDetail, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get transfers by customer ID")

	query := `
		SELECT t.id, t.from_id, t.to_id, c.name, t.amount, t.created_at
		FROM transfers t
		JOIN customers c ON c.id = t.to_id
		WHERE t.from_id = $1
		ORDER BY t.id ASC`

	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transfers by customer ID")
		return nil, err
	}
	defer rows.Close()

	var transfers []*model.TransferDetail
	for rows.Next() {
		var t model.TransferDetail
		if err := rows.Scan(&t.ID, &t.FromID, &t.ToID, &t.ToName, &t.Amount, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transfer row")
			return nil, err
		}
		transfers = append(transfers, &t)
	}
	return transfers, rows.Err()
}

// GetAllTransfers retrieves the global transfer feed with both customer
// names, ordered by id ascending.
func (r *TransferRepository) GetAllTransfers() ([]*model.TransferDetail, error) {
	log := logger.Log
	log.Info("Executing query to get all transfers")

	query := `
		SELECT t.id, t.from_id, f.name, t.to_id, c.name, t.amount, t.created_at
		FROM transfers t
		JOIN customers f ON f.id = t.from_id
		JOIN customers c ON c.id = t.to_id
		ORDER BY t.id ASC`

	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all transfers")
		return nil, err
	}
	defer rows.Close()

	var transfers []*model.TransferDetail
	for rows.Next() {
		var t model.TransferDetail
		if err := rows.Scan(&t.ID, &t.FromID, &t.FromName, &t.ToID, &t.ToName, &t.Amount, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transfer row")
			return nil, err
		}
		transfers = append(transfers, &t)
	}
	return transfers, rows.Err()
}
