package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

type PaymentService struct {
	orders    ports.OrderRepository
	payments  ports.PaymentRepository
	customers ports.CustomerRepository
	gateway   ports.PaymentGateway

	// gatewayTimeout bounds the charge call. Expiry is a failed charge,
	// never a retry: retrying an external gateway risks double-charging.
	gatewayTimeout time.Duration
}

func NewPaymentService(
	orders ports.OrderRepository,
	payments ports.PaymentRepository,
	customers ports.CustomerRepository,
	gw ports.PaymentGateway,
	gatewayTimeout time.Duration,
) *PaymentService {
	return &PaymentService{
		orders:         orders,
		payments:       payments,
		customers:      customers,
		gateway:        gw,
		gatewayTimeout: gatewayTimeout,
	}
}

// Settle charges the order's server-computed total against the gateway and
// records the outcome. The amount is read from the order row — a client
// can never influence it.
//
// A failed charge appends one failed payment row and leaves the order
// untouched. A successful charge appends the success row and moves the
// order to paid in the same transaction; the in-transaction status
// re-check makes concurrent settlements of one order yield exactly one
// success.
func (s *PaymentService) Settle(ctx context.Context, orderID, method string) (*entity.Payment, *entity.Order, error) {
	if orderID == "" || method == "" {
		return nil, nil, apperror.Validationf("missing_fields",
			"order id and payment method are required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	// Fast-path check before spending a gateway round trip. The
	// authoritative check happens again inside the settlement transaction.
	if order.Status != entity.OrderStatusPending {
		return nil, nil, apperror.InvalidStatef("order_not_pending",
			"cannot process payment for an order with status %q", order.Status)
	}

	amount := order.TotalAmount

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()
	result, gwErr := s.gateway.Charge(gwCtx, amount)

	if gwErr != nil || !result.Success {
		payment := &entity.Payment{
			ID:            uuid.NewString(),
			OrderID:       order.ID,
			PaymentMethod: method,
			Amount:        amount,
			PaymentStatus: entity.PaymentStatusFailed,
			TransactionID: failedTransactionID(result.TransactionID),
			PaymentDate:   time.Now().UTC(),
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return nil, nil, err
		}
		slog.WarnContext(ctx, "payment failed at gateway",
			"order_id", order.ID,
			"transaction_id", payment.TransactionID,
			"error", gwErr,
		)
		return payment, order, apperror.Unavailablef("payment_failed",
			"payment failed at payment gateway")
	}

	payment := &entity.Payment{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		PaymentMethod: method,
		Amount:        amount,
		PaymentStatus: entity.PaymentStatusSuccess,
		TransactionID: result.TransactionID,
		PaymentDate:   time.Now().UTC(),
	}
	updated, err := s.payments.RecordSettlement(ctx, payment)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "payment settled",
		"order_id", order.ID,
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
		"amount", amount.StringFixed(2),
	)
	return payment, updated, nil
}

// GetPayment is gated the same way as orders: admins and the owner of the
// paying order only, with not-found reported before the gate.
func (s *PaymentService) GetPayment(ctx context.Context, ident identity.Identity, id string) (*entity.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ownerID := ""
	if payment.Order != nil {
		ownerID = payment.Order.CustomerID
	}
	if !identity.CanAccess(ident, s.callerCustomerID(ctx, ident), ownerID) {
		return nil, apperror.Authorizationf("not_payment_owner", "not authorized to view this payment")
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]entity.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) callerCustomerID(ctx context.Context, ident identity.Identity) string {
	customer, err := s.customers.FindByUserID(ctx, ident.UserID)
	if err != nil {
		return ""
	}
	return customer.ID
}

// failedTransactionID keeps the audit row useful when the gateway did not
// return an id (decline without reference, timeout, transport error).
func failedTransactionID(fromGateway string) string {
	if fromGateway != "" {
		return fromGateway
	}
	return fmt.Sprintf("FAILED_%d", time.Now().UnixMilli())
}
