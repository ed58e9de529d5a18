package handler

import (
	"encoding/json"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// CustomerHandler holds dependencies for customer-related handlers.
type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(s *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// CreateCustomer godoc
// @Summary      Create a new customer
// @Description  Opens a customer account with an optional starting balance (default 0).
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        customer body model.CreateCustomerRequest true "Customer details"
// @Success      200  {object}  model.APIResponse{data=model.Customer}
// @Failure      400  {object}  common.AppError "Name too short or negative starting balance"
// @Failure      422  {object}  common.AppError "Malformed payload"
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{
		"name":             req.Name,
		"starting_balance": req.StartingBalance,
	})
	log.Info("Create customer request received")

	customer, err := h.service.CreateCustomer(req.Name, req.StartingBalance)
	if err != nil {
		switch err {
		case service.ErrNameTooShort, service.ErrNegativeBalance:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create customer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "customer created", Data: customer})
	return nil
}

// GetCustomer godoc
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Success      200  {object}  model.APIResponse{data=model.Customer}
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	customer, err := h.service.GetCustomer(customerID)
	if err != nil {
		switch err {
		case service.ErrCustomerNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve customer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "customer retrieved", Data: customer})
	return nil
}

// ListCustomers godoc
// @Summary      List all customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.APIResponse{data=[]model.Customer}
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) *common.AppError {
	customers, err := h.service.ListCustomers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve customers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "customers retrieved", Data: customers})
	return nil
}

// RenameCustomer godoc
// @Summary      Rename a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Customer ID"
// @Param        customer body model.RenameCustomerRequest true "New name"
// @Success      200  {object}  model.APIResponse
// @Failure      400  {object}  common.AppError "Name too short"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) RenameCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := customerIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.RenameCustomerRequest
	if vErr := common.ValidateAndDecode(r, &req); vErr != nil {
		return vErr
	}

	if err := h.service.RenameCustomer(customerID, req.Name); err != nil {
		switch err {
		case service.ErrCustomerNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrNameTooShort:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not rename customer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.APIResponse{Message: "customer renamed"})
	return nil
}

// customerIDFromPath parses the {id} path segment.
func customerIDFromPath(r *http.Request) (int, *common.AppError) {
	customerID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}
	return customerID, nil
}
