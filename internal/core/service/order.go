// Package service contains the application services. Each method is a
// single request/response operation: validate, read or write the store,
// return a domain entity or a typed apperror.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

// PlaceOrderItem is one requested line. There is deliberately no price
// field anywhere in the input: unit prices are always read from the
// catalog, never from the client.
type PlaceOrderItem struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	CustomerID      string
	ShippingAddress string
	CustomerNotes   string
	Items           []PlaceOrderItem
}

type OrderService struct {
	orders    ports.OrderRepository
	catalog   ports.CatalogLookup
	customers ports.CustomerRepository
}

func NewOrderService(orders ports.OrderRepository, catalog ports.CatalogLookup, customers ports.CustomerRepository) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, customers: customers}
}

// PlaceOrder validates the request against the catalog, computes the
// authoritative total from catalog prices, and persists the order together
// with its item snapshots in one atomic write. Everything before the write
// is pure validation, so a failed request leaves no state behind.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*entity.Order, error) {
	if in.CustomerID == "" || in.ShippingAddress == "" || len(in.Items) == 0 {
		return nil, apperror.Validationf("missing_fields",
			"customer id, shipping address, and items are required")
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, apperror.Validationf("missing_product_id", "every item needs a product id")
		}
		if item.Quantity <= 0 {
			return nil, apperror.Validationf("invalid_quantity", "quantity must be greater than zero")
		}
	}

	// One batched lookup for all distinct product ids. A count mismatch
	// means at least one id does not exist; which one is not reported.
	ids := distinctProductIDs(in.Items)
	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) < len(ids) {
		return nil, apperror.NotFoundf("products_not_found", "one or more products not found")
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, apperror.NotFoundf("products_not_found", "one or more products not found")
		}
		if !product.IsAvailable {
			return nil, apperror.Unavailablef("product_unavailable",
				"product %q is not available", product.Name)
		}
		line := entity.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			ProductID:    product.ID,
			Quantity:     item.Quantity,
			PricePerItem: product.Price,
		}
		total = total.Add(line.Subtotal())
		items = append(items, line)
	}

	order := &entity.Order{
		ID:              orderID,
		CustomerID:      in.CustomerID,
		OrderDate:       now,
		ShippingAddress: in.ShippingAddress,
		CustomerNotes:   in.CustomerNotes,
		TotalAmount:     total,
		Status:          entity.OrderStatusPending,
		Items:           items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"total_amount", total.StringFixed(2),
		"items", len(items),
	)

	// Reload so the response carries the resolved product details.
	return s.orders.FindByID(ctx, order.ID)
}

// GetOrder loads an order and gates it: absent orders report not-found
// before any authorization decision is made.
func (s *OrderService) GetOrder(ctx context.Context, ident identity.Identity, id string) (*entity.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccess(ident, s.callerCustomerID(ctx, ident), order.CustomerID) {
		return nil, apperror.Authorizationf("not_order_owner", "not authorized to view this order")
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.orders.List(ctx)
}

// MyOrders lists the caller's own orders, newest first.
func (s *OrderService) MyOrders(ctx context.Context, ident identity.Identity) ([]entity.Order, error) {
	customer, err := s.customers.FindByUserID(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByCustomer(ctx, customer.ID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	if status == "" {
		return apperror.Validationf("missing_status", "status is required")
	}
	if !status.Valid() {
		return apperror.Validationf("invalid_status", "unknown order status %q", status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// DeleteOrder refuses to remove paid or fulfilled orders — they are
// financial records.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	switch order.Status {
	case entity.OrderStatusPending, entity.OrderStatusCancelled:
	default:
		return apperror.InvalidStatef("order_not_deletable",
			"cannot delete an order with status %q", order.Status)
	}
	return s.orders.Delete(ctx, id)
}

// callerCustomerID resolves the caller's customer profile id, or "" when
// the caller has none.
func (s *OrderService) callerCustomerID(ctx context.Context, ident identity.Identity) string {
	customer, err := s.customers.FindByUserID(ctx, ident.UserID)
	if err != nil {
		return ""
	}
	return customer.ID
}

func distinctProductIDs(items []PlaceOrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
