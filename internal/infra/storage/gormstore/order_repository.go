package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and its items in a single transaction. A
// partial commit — order without items, or some items missing — is never
// observable by a concurrent reader.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return apperror.Dependency("order_create", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Items.Product").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "order_not_found", "order not found")
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Items.Product").
		Preload("Payments").
		Find(&orders).Error
	if err != nil {
		return nil, apperror.Dependency("order_list", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperror.Dependency("order_list", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return apperror.Dependency("order_update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("order_not_found", "order not found")
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "order_not_found", "order not found")
	}
	return nil
}
