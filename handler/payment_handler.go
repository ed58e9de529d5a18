package handler

import (
	"encoding/json"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
)

// PaymentHandler holds dependencies for payment-related handlers.
type PaymentHandler struct {
	cashService     *service.CashService
	customerService *service.CustomerService
}

func NewPaymentHandler(cashService *service.CashService, customerService *service.CustomerService) *PaymentHandler {
	return &PaymentHandler{
		cashService:     cashService,
		customerService: customerService,
	}
}

// CreatePayment godoc
// @Summary      Pay an external payee from a customer account
// @Description  Debits the customer and records the payment in the same atomic unit.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payment body model.PaymentRequest true "Payment details"
// @Success      200  {object}  model.APIResponse{data=model.Payment}
// @Failure      400  {object}  common.AppError "Invalid amount or insufficient funds"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Failure      409  {object}  common.AppError "Concurrent update conflict, safe to retry"
// @Failure      422  {object}  common.AppError "Malformed payload"
// @Router       /api/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.PaymentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	payment, err := h.cashService.CreatePayment(r.Context(), req)
	if err != nil {
		return mapCashError(err, "Could not process payment")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "payment completed", Data: payment})
	return nil
}

// ListPaymentsForCustomer godoc
// @Summary      List payments made by a customer
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Success      200  {object}  model.APIResponse{data=[]model.Payment}
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id}/payments [get]
func (h *PaymentHandler) ListPaymentsForCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	payments, err := h.customerService.ListPaymentsForCustomer(customerID)
	if err != nil {
		switch err {
		case service.ErrCustomerNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve payments", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "payments retrieved", Data: payments})
	return nil
}
