package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
)

// TransferHandler holds dependencies for transfer-related handlers.
type TransferHandler struct {
	ledgerService   *service.LedgerService
	customerService *service.CustomerService
}

func NewTransferHandler(ledgerService *service.LedgerService, customerService *service.CustomerService) *TransferHandler {
	return &TransferHandler{
		ledgerService:   ledgerService,
		customerService: customerService,
	}
}

// CreateTransfer godoc
// @Summary      Transfer money between customers
// @Description  Moves a specified amount from one customer to another as a single atomic unit.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transfer body model.TransferRequest true "Details of the transfer"
// @Success      200  {object}  model.APIResponse{data=model.Transfer}
// @Failure      400  {object}  common.AppError "Invalid amount, self-transfer, or insufficient funds"
// @Failure      404  {object}  common.AppError "Sender or receiver customer not found"
// @Failure      409  {object}  common.AppError "Concurrent update conflict, safe to retry"
// @Failure      422  {object}  common.AppError "Malformed payload"
// @Router       /api/transfers [post]
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	transfer, err := h.ledgerService.Transfer(r.Context(), req.FromID, req.ToID, req.Amount)
	if err != nil {
		return mapTransferError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "transfer completed", Data: transfer})
	return nil
}

// mapTransferError maps transfer engine errors to HTTP status codes. The
// engine wraps storage errors with context, so matching uses errors.Is
// instead of equality.
func mapTransferError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrSenderNotFound):
		return common.NewAppError(http.StatusNotFound, service.ErrSenderNotFound.Error(), err)
	case errors.Is(err, service.ErrReceiverNotFound):
		return common.NewAppError(http.StatusNotFound, service.ErrReceiverNotFound.Error(), err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(http.StatusBadRequest, service.ErrInsufficientFunds.Error(), err)
	case errors.Is(err, service.ErrSelfTransfer):
		return common.NewAppError(http.StatusBadRequest, service.ErrSelfTransfer.Error(), err)
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewAppError(http.StatusBadRequest, service.ErrInvalidAmount.Error(), err)
	case errors.Is(err, service.ErrConflict):
		return common.NewAppError(http.StatusConflict, service.ErrConflict.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process transfer", err)
	}
}

// ListTransfers godoc
// @Summary      List all transfers
// @Description  Global transfer feed with both customer names, ordered by id.
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.APIResponse{data=[]model.TransferDetail}
// @Router       /api/transfers [get]
func (h *TransferHandler) ListTransfers(w http.ResponseWriter, r *http.Request) *common.AppError {
	transfers, err := h.customerService.ListAllTransfers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transfers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "transfers retrieved", Data: transfers})
	return nil
}

// ListTransfersForCustomer godoc
// @Summary      List outgoing transfers of a customer
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Success      200  {object}  model.APIResponse{data=[]model.TransferDetail}
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id}/transfers [get]
func (h *TransferHandler) ListTransfersForCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	transfers, err := h.customerService.ListTransfersForCustomer(customerID)
	if err != nil {
		switch err {
		case service.ErrCustomerNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transfers", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "transfers retrieved", Data: transfers})
	return nil
}
