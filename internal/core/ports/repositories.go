// Package ports declares the interfaces the core services depend on.
// Implementations live under internal/infra; services never import infra.
package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
)

// Repositories return apperror.NotFound-kind errors for absent rows and
// apperror.Dependency for unexpected store failures.

type RoleRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	// FindByUserID resolves a user's customer profile.
	FindByUserID(ctx context.Context, userID string) (*entity.Customer, error)
	List(ctx context.Context) ([]entity.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	// FindByIDs returns at most one product per requested id; absent ids
	// are simply omitted from the result.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// CatalogLookup is the narrow read surface order placement needs from the
// product catalog: current price and availability per id.
type CatalogLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
}

type ProductImageRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.ProductImage, error)
	FindByID(ctx context.Context, id string) (*entity.ProductImage, error)
	Create(ctx context.Context, image *entity.ProductImage) error
	// SetThumbnail atomically clears every thumbnail flag for the image's
	// product and sets the given image as the only thumbnail.
	SetThumbnail(ctx context.Context, imageID string) (*entity.ProductImage, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	// Create persists the order together with its items in one atomic
	// write: either all rows commit or none do.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// Delete removes an order and (via cascade) its items. Paid orders are
	// financial records; callers must reject deleting them beforehand.
	Delete(ctx context.Context, id string) error
}

type PaymentRepository interface {
	// Create appends a single payment row with no other mutation — the
	// failed-settlement path.
	Create(ctx context.Context, payment *entity.Payment) error
	// RecordSettlement atomically re-checks the order is still pending
	// (under a row lock where the dialect supports one), appends the
	// success payment, and moves the order to paid. It returns the updated
	// order, or an InvalidState-kind error when the order lost the race.
	RecordSettlement(ctx context.Context, payment *entity.Payment) (*entity.Order, error)
	FindByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context) ([]entity.Payment, error)
}
