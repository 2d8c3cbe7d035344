package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
	"github.com/jcmexdev/ecommerce-api/internal/infra/storage/gormstore"
)

// fakeGateway returns a scripted outcome and records what it was asked to
// charge.
type fakeGateway struct {
	mu      sync.Mutex
	result  ports.ChargeResult
	err     error
	delay   time.Duration
	amounts []decimal.Decimal
}

func (g *fakeGateway) Charge(ctx context.Context, amount decimal.Decimal) (ports.ChargeResult, error) {
	g.mu.Lock()
	g.amounts = append(g.amounts, amount)
	g.mu.Unlock()
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return ports.ChargeResult{}, ctx.Err()
		}
	}
	return g.result, g.err
}

type PaymentServiceSuite struct {
	suite.Suite

	db       *gorm.DB
	gateway  *fakeGateway
	payments *PaymentService

	orderID    string
	customerID string
	ownerID    string // user id owning the customer profile
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.db = testStore(s.T())

	orderRepo := gormstore.NewOrderRepository(s.db)
	paymentRepo := gormstore.NewPaymentRepository(s.db)
	customerRepo := gormstore.NewCustomerRepository(s.db)
	productRepo := gormstore.NewProductRepository(s.db)

	s.gateway = &fakeGateway{result: ports.ChargeResult{Success: true, TransactionID: "TXN_123"}}
	s.payments = NewPaymentService(orderRepo, paymentRepo, customerRepo, s.gateway, time.Second)

	ctx := context.Background()

	category := entity.Category{ID: uuid.NewString(), Name: "Widgets", Slug: "widgets"}
	s.Require().NoError(s.db.Create(&category).Error)
	productP := entity.Product{
		ID: uuid.NewString(), CategoryID: category.ID,
		Name: "Widget P", Slug: "widget-p",
		Price: decimal.RequireFromString("10.00"), IsAvailable: true,
	}
	productQ := entity.Product{
		ID: uuid.NewString(), CategoryID: category.ID,
		Name: "Widget Q", Slug: "widget-q",
		Price: decimal.RequireFromString("25.00"), IsAvailable: true,
	}
	s.Require().NoError(s.db.Create(&productP).Error)
	s.Require().NoError(s.db.Create(&productQ).Error)

	var role entity.Role
	s.Require().NoError(s.db.First(&role, "name = ?", identity.RoleUser).Error)
	user := entity.User{ID: uuid.NewString(), Name: "Alice", Email: "alice@example.com", PasswordHash: "x", RoleID: role.ID}
	s.Require().NoError(s.db.Create(&user).Error)
	s.ownerID = user.ID
	customer := entity.Customer{ID: uuid.NewString(), UserID: user.ID, Address: "1 Main St"}
	s.Require().NoError(s.db.Create(&customer).Error)
	s.customerID = customer.ID

	orders := NewOrderService(orderRepo, productRepo, customerRepo)
	order, err := orders.PlaceOrder(ctx, PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "1 Main St",
		Items: []PlaceOrderItem{
			{ProductID: productP.ID, Quantity: 3},
			{ProductID: productQ.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)
	s.orderID = order.ID
}

func (s *PaymentServiceSuite) paymentRows() []entity.Payment {
	var rows []entity.Payment
	s.Require().NoError(s.db.Find(&rows).Error)
	return rows
}

func (s *PaymentServiceSuite) orderStatus() entity.OrderStatus {
	var order entity.Order
	s.Require().NoError(s.db.First(&order, "id = ?", s.orderID).Error)
	return order.Status
}

func (s *PaymentServiceSuite) TestSettleSuccess() {
	payment, order, err := s.payments.Settle(context.Background(), s.orderID, "credit_card")
	s.Require().NoError(err)

	s.Equal(entity.PaymentStatusSuccess, payment.PaymentStatus)
	s.Equal("TXN_123", payment.TransactionID)
	s.True(payment.Amount.Equal(decimal.RequireFromString("55.00")),
		"expected amount 55.00, got %s", payment.Amount)
	s.Equal(entity.OrderStatusPaid, order.Status)
	s.Equal(entity.OrderStatusPaid, s.orderStatus())

	// The charged amount came from the order row, not from any caller input.
	s.Require().Len(s.gateway.amounts, 1)
	s.True(s.gateway.amounts[0].Equal(decimal.RequireFromString("55.00")))
}

func (s *PaymentServiceSuite) TestResettleRejected() {
	_, _, err := s.payments.Settle(context.Background(), s.orderID, "credit_card")
	s.Require().NoError(err)

	_, _, err = s.payments.Settle(context.Background(), s.orderID, "credit_card")
	s.Equal(apperror.KindInvalidState, apperror.KindOf(err))

	rows := s.paymentRows()
	s.Len(rows, 1)
	s.Equal(entity.OrderStatusPaid, s.orderStatus())
}

func (s *PaymentServiceSuite) TestSettleGatewayFailure() {
	s.gateway.result = ports.ChargeResult{Success: false}

	payment, _, err := s.payments.Settle(context.Background(), s.orderID, "credit_card")
	s.Require().Error(err)
	s.Equal(apperror.KindUnavailable, apperror.KindOf(err))

	// Exactly one failed row, order untouched, transaction id synthesized.
	s.Require().NotNil(payment)
	s.Equal(entity.PaymentStatusFailed, payment.PaymentStatus)
	s.True(strings.HasPrefix(payment.TransactionID, "FAILED_"))
	rows := s.paymentRows()
	s.Require().Len(rows, 1)
	s.Equal(entity.PaymentStatusFailed, rows[0].PaymentStatus)
	s.Equal(entity.OrderStatusPending, s.orderStatus())
}

func (s *PaymentServiceSuite) TestSettleGatewayTimeoutIsFailure() {
	s.gateway.delay = 5 * time.Second
	s.payments.gatewayTimeout = 50 * time.Millisecond

	_, _, err := s.payments.Settle(context.Background(), s.orderID, "credit_card")
	s.Equal(apperror.KindUnavailable, apperror.KindOf(err))
	s.Equal(entity.OrderStatusPending, s.orderStatus())

	rows := s.paymentRows()
	s.Require().Len(rows, 1)
	s.Equal(entity.PaymentStatusFailed, rows[0].PaymentStatus)
}

func (s *PaymentServiceSuite) TestSettleValidation() {
	_, _, err := s.payments.Settle(context.Background(), "", "credit_card")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	_, _, err = s.payments.Settle(context.Background(), s.orderID, "")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	s.Empty(s.paymentRows())
}

func (s *PaymentServiceSuite) TestSettleUnknownOrder() {
	_, _, err := s.payments.Settle(context.Background(), uuid.NewString(), "credit_card")
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))
	s.Empty(s.paymentRows())
}

// Two concurrent settlements of one pending order: exactly one may succeed,
// and exactly one success payment may exist afterwards.
func (s *PaymentServiceSuite) TestConcurrentSettlementSingleSuccess() {
	s.gateway.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.payments.Settle(context.Background(), s.orderID, "credit_card")
		}(i)
	}
	wg.Wait()

	var successes, invalidState int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apperror.KindOf(err) == apperror.KindInvalidState:
			invalidState++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, successes)
	s.Equal(1, invalidState)

	var successRows int64
	s.Require().NoError(s.db.Model(&entity.Payment{}).
		Where("payment_status = ?", entity.PaymentStatusSuccess).
		Count(&successRows).Error)
	s.EqualValues(1, successRows)
	s.Equal(entity.OrderStatusPaid, s.orderStatus())
}

func (s *PaymentServiceSuite) TestGetPaymentAuthorization() {
	ctx := context.Background()
	payment, _, err := s.payments.Settle(ctx, s.orderID, "credit_card")
	s.Require().NoError(err)

	_, err = s.payments.GetPayment(ctx, identity.Identity{UserID: s.ownerID, Role: identity.RoleUser}, payment.ID)
	s.NoError(err)

	_, err = s.payments.GetPayment(ctx, identity.Identity{UserID: uuid.NewString(), Role: identity.RoleAdmin}, payment.ID)
	s.NoError(err)

	_, err = s.payments.GetPayment(ctx, identity.Identity{UserID: uuid.NewString(), Role: identity.RoleUser}, payment.ID)
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))

	_, err = s.payments.GetPayment(ctx, identity.Identity{UserID: uuid.NewString(), Role: identity.RoleUser}, uuid.NewString())
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))
}
