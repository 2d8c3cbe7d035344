package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
	"github.com/jcmexdev/ecommerce-api/internal/pkg/cache"
)

// productCacheTTL bounds how stale a cached product read may be. Pricing
// for orders never goes through the cache — only the public read paths do.
const productCacheTTL = 5 * time.Minute

// CatalogService owns categories, products, and product images.
type CatalogService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	images     ports.ProductImageRepository
	cache      cache.Cache // nil disables caching
}

func NewCatalogService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	images ports.ProductImageRepository,
	c cache.Cache,
) *CatalogService {
	return &CatalogService{categories: categories, products: products, images: images, cache: c}
}

// ── Categories ──────────────────────────────────────────────────────────

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.Validationf("missing_name", "category name is required")
	}
	categorySlug := slug.Make(name)
	if _, err := s.categories.FindBySlug(ctx, categorySlug); err == nil {
		return nil, apperror.Validationf("category_exists", "category already exists")
	} else if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	category := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        categorySlug,
		Description: description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name, description string) (*entity.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		newSlug := slug.Make(name)
		if existing, err := s.categories.FindBySlug(ctx, newSlug); err == nil && existing.ID != id {
			return nil, apperror.Validationf("slug_in_use", "slug already in use")
		} else if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
			return nil, err
		}
		category.Name = name
		category.Slug = newSlug
	}
	category.Description = description
	category.Products = nil
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// ── Products ────────────────────────────────────────────────────────────

type ProductInput struct {
	Name        string
	CategoryID  string
	Description string
	Price       decimal.Decimal
	IsAvailable bool
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.List(ctx)
}

// GetProductBySlug serves the hot public read path through a read-through
// cache. Cache failures degrade to the store, never to an error.
func (s *CatalogService) GetProductBySlug(ctx context.Context, productSlug string) (*entity.Product, error) {
	if s.cache != nil {
		key := s.cache.GenerateKey("product_slug", productSlug)
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var product entity.Product
			if err := json.Unmarshal([]byte(raw), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.products.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(product); err == nil {
			key := s.cache.GenerateKey("product_slug", productSlug)
			if err := s.cache.Set(ctx, key, raw, productCacheTTL); err != nil {
				slog.WarnContext(ctx, "product cache set failed", "slug", productSlug, "error", err)
			}
		}
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, apperror.Validationf("missing_fields", "product name and category id are required")
	}
	if in.Price.IsNegative() {
		return nil, apperror.Validationf("invalid_price", "price must be zero or greater")
	}
	productSlug := slug.Make(in.Name)
	if _, err := s.products.FindBySlug(ctx, productSlug); err == nil {
		return nil, apperror.Validationf("product_exists", "product already exists")
	} else if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        productSlug,
		Description: in.Description,
		Price:       in.Price,
		IsAvailable: in.IsAvailable,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, currentSlug string, in ProductInput) (*entity.Product, error) {
	product, err := s.products.FindBySlug(ctx, currentSlug)
	if err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperror.Validationf("invalid_price", "price must be zero or greater")
	}

	if in.Name != "" {
		newSlug := slug.Make(in.Name)
		if existing, err := s.products.FindBySlug(ctx, newSlug); err == nil && existing.ID != product.ID {
			return nil, apperror.Validationf("slug_in_use", "slug already in use")
		} else if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
			return nil, err
		}
		product.Name = in.Name
		product.Slug = newSlug
	}
	if in.CategoryID != "" {
		product.CategoryID = in.CategoryID
	}
	product.Description = in.Description
	product.Price = in.Price
	product.IsAvailable = in.IsAvailable
	product.Images = nil
	product.Category = nil

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateProduct(ctx, currentSlug, product.Slug)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productSlug string) error {
	product, err := s.products.FindBySlug(ctx, productSlug)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return err
	}
	s.invalidateProduct(ctx, productSlug)
	return nil
}

func (s *CatalogService) invalidateProduct(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, sl := range slugs {
		keys = append(keys, s.cache.GenerateKey("product_slug", sl))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "error", err)
	}
}

// ── Product images ──────────────────────────────────────────────────────

func (s *CatalogService) ListProductImages(ctx context.Context, productID string) ([]entity.ProductImage, error) {
	return s.images.ListByProduct(ctx, productID)
}

// AddProductImage records an uploaded image file for a product. imageURL
// is the public path the static file server exposes.
func (s *CatalogService) AddProductImage(ctx context.Context, productID, imageURL string) (*entity.ProductImage, error) {
	if imageURL == "" {
		return nil, apperror.Validationf("missing_image", "image file is required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	image := &entity.ProductImage{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ImageURL:    imageURL,
		IsThumbnail: false,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}
	s.invalidateProduct(ctx, product.Slug)
	return image, nil
}

func (s *CatalogService) SetThumbnail(ctx context.Context, imageID string) (*entity.ProductImage, error) {
	image, err := s.images.SetThumbnail(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if product, err := s.products.FindByID(ctx, image.ProductID); err == nil {
		s.invalidateProduct(ctx, product.Slug)
	}
	return image, nil
}

func (s *CatalogService) DeleteProductImage(ctx context.Context, imageID string) error {
	return s.images.Delete(ctx, imageID)
}
