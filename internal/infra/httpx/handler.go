// Package httpx is the HTTP edge: routing, request decoding, and mapping
// application errors to response codes. Handlers stay thin — all business
// rules live in the services.
package httpx

import (
	"github.com/jcmexdev/ecommerce-api/internal/core/service"
)

type Handler struct {
	auth      *service.AuthService
	customers *service.CustomerService
	catalog   *service.CatalogService
	orders    *service.OrderService
	payments  *service.PaymentService
	uploadDir string
}

func NewHandler(
	auth *service.AuthService,
	customers *service.CustomerService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	payments *service.PaymentService,
	uploadDir string,
) *Handler {
	return &Handler{
		auth:      auth,
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		payments:  payments,
		uploadDir: uploadDir,
	}
}
