package router

import (
	"go-ledger-api/common"
	"go-ledger-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(userHandler *handler.UserHandler, customerHandler *handler.CustomerHandler, cashHandler *handler.CashHandler, transferHandler *handler.TransferHandler, paymentHandler *handler.PaymentHandler) http.Handler {
	mux := http.NewServeMux()

	// Protected endpoints require a valid Bearer token.
	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return handler.AuthMiddleware(handler.ErrorHandlingMiddleware(h))
	}

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /register", handler.ErrorHandlingMiddleware(userHandler.Register))
	mux.Handle("POST /login", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("POST /api/token/refresh", handler.ErrorHandlingMiddleware(userHandler.RefreshToken))
	mux.Handle("POST /api/logout", protected(userHandler.Logout))

	mux.Handle("POST /api/customers", protected(customerHandler.CreateCustomer))
	mux.Handle("GET /api/customers", protected(customerHandler.ListCustomers))
	mux.Handle("GET /api/customers/{id}", protected(customerHandler.GetCustomer))
	mux.Handle("PUT /api/customers/{id}", protected(customerHandler.RenameCustomer))

	mux.Handle("POST /api/customers/{id}/deposit", protected(cashHandler.Deposit))
	mux.Handle("POST /api/customers/{id}/withdraw", protected(cashHandler.Withdraw))

	mux.Handle("POST /api/transfers", protected(transferHandler.CreateTransfer))
	mux.Handle("GET /api/transfers", protected(transferHandler.ListTransfers))
	mux.Handle("GET /api/customers/{id}/transfers", protected(transferHandler.ListTransfersForCustomer))

	mux.Handle("POST /api/payments", protected(paymentHandler.CreatePayment))
	mux.Handle("GET /api/customers/{id}/payments", protected(paymentHandler.ListPaymentsForCustomer))

	return mux
}
