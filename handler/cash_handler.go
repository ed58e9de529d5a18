package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
)

// CashHandler holds dependencies for deposit and withdrawal handlers.
type CashHandler struct {
	service *service.CashService
}

func NewCashHandler(s *service.CashService) *CashHandler {
	return &CashHandler{service: s}
}

// Deposit godoc
// @Summary      Deposit cash into a customer account
// @Tags         cash
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Param        deposit body model.AmountRequest true "Amount to deposit"
// @Success      200  {object}  model.APIResponse{data=model.Customer}
// @Failure      400  {object}  common.AppError "Amount must be greater than zero"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id}/deposit [post]
func (h *CashHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if vErr := common.ValidateAndDecode(r, &req); vErr != nil {
		return vErr
	}

	customer, err := h.service.Deposit(r.Context(), customerID, req.Amount)
	if err != nil {
		return mapCashError(err, "Could not process deposit")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "deposit completed", Data: customer})
	return nil
}

// Withdraw godoc
// @Summary      Withdraw cash from a customer account
// @Tags         cash
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Param        withdrawal body model.AmountRequest true "Amount to withdraw"
// @Success      200  {object}  model.APIResponse{data=model.Customer}
// @Failure      400  {object}  common.AppError "Invalid amount or insufficient funds"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id}/withdraw [post]
func (h *CashHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if vErr := common.ValidateAndDecode(r, &req); vErr != nil {
		return vErr
	}

	customer, err := h.service.Withdraw(r.Context(), customerID, req.Amount)
	if err != nil {
		return mapCashError(err, "Could not process withdrawal")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "withdrawal completed", Data: customer})
	return nil
}

// mapCashError maps cash-movement engine errors to HTTP status codes. The
// engine wraps storage errors with context, so matching uses errors.Is
// instead of equality.
func mapCashError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return common.NewAppError(http.StatusNotFound, service.ErrCustomerNotFound.Error(), err)
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewAppError(http.StatusBadRequest, service.ErrInvalidAmount.Error(), err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(http.StatusBadRequest, service.ErrInsufficientFunds.Error(), err)
	case errors.Is(err, service.ErrConflict):
		return common.NewAppError(http.StatusConflict, service.ErrConflict.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
