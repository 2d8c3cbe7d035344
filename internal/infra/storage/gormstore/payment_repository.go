package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

var _ ports.PaymentRepository = (*PaymentRepository)(nil)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends one payment row. Used for the failed-gateway branch,
// where nothing else must change.
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return apperror.Dependency("payment_create", err)
	}
	return nil
}

// RecordSettlement is the success path: inside one transaction it re-reads
// the order under a row lock, verifies it is still pending, appends the
// success payment, and moves the order to paid. Two concurrent settlements
// of the same order therefore serialise: the loser finds the order already
// paid and gets an InvalidState error, with nothing written.
func (r *PaymentRepository) RecordSettlement(ctx context.Context, payment *entity.Payment) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SELECT ... FOR UPDATE where the dialect supports it. SQLite has
		// no row locks; its single writer connection serialises the whole
		// transaction instead.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&order, "id = ?", payment.OrderID).Error; err != nil {
			return err
		}
		if order.Status != entity.OrderStatusPending {
			return apperror.InvalidStatef("order_not_pending",
				"cannot process payment for an order with status %q", order.Status)
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Order{}).
			Where("id = ?", order.ID).
			Update("status", entity.OrderStatusPaid).Error
	})
	if err != nil {
		if ae := apperror.As(err); ae != nil {
			return nil, ae
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("order_not_found", "order not found")
		}
		return nil, apperror.Dependency("payment_settlement", err)
	}
	order.Status = entity.OrderStatusPaid
	return &order, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Order.Customer").
		First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "payment_not_found", "payment not found")
	}
	return &payment, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, apperror.Dependency("payment_list", err)
	}
	return payments, nil
}
