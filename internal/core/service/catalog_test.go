package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/infra/storage/gormstore"
)

// memoryCache is a map-backed stand-in for the Redis cache.
type memoryCache struct {
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func (c *memoryCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

type CatalogServiceSuite struct {
	suite.Suite

	db      *gorm.DB
	cache   *memoryCache
	catalog *CatalogService

	categoryID string
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.db = testStore(s.T())
	s.cache = newMemoryCache()
	s.catalog = NewCatalogService(
		gormstore.NewCategoryRepository(s.db),
		gormstore.NewProductRepository(s.db),
		gormstore.NewProductImageRepository(s.db),
		s.cache,
	)

	category, err := s.catalog.CreateCategory(context.Background(), "Electronics", "gadgets")
	s.Require().NoError(err)
	s.categoryID = category.ID
}

func (s *CatalogServiceSuite) createProduct(name, price string) *entity.Product {
	s.T().Helper()
	product, err := s.catalog.CreateProduct(context.Background(), ProductInput{
		Name:        name,
		CategoryID:  s.categoryID,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	})
	s.Require().NoError(err)
	return product
}

func (s *CatalogServiceSuite) TestCategorySlugUniqueness() {
	ctx := context.Background()

	// Same name, and a different name that slugifies identically.
	_, err := s.catalog.CreateCategory(ctx, "Electronics", "")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
	_, err = s.catalog.CreateCategory(ctx, "electronics!", "")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	other, err := s.catalog.CreateCategory(ctx, "Books", "")
	s.Require().NoError(err)
	s.Equal("books", other.Slug)

	// Renaming onto an existing slug is rejected.
	_, err = s.catalog.UpdateCategory(ctx, other.ID, "Electronics", "")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	// Renaming a category to itself keeps working.
	renamed, err := s.catalog.UpdateCategory(ctx, other.ID, "Books", "printed matter")
	s.Require().NoError(err)
	s.Equal("books", renamed.Slug)
	s.Equal("printed matter", renamed.Description)
}

func (s *CatalogServiceSuite) TestProductSlugGeneratedFromName() {
	product := s.createProduct("USB-C Cable 2m", "9.99")
	s.Equal("usb-c-cable-2m", product.Slug)

	_, err := s.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       "USB-C Cable 2m",
		CategoryID: s.categoryID,
		Price:      decimal.RequireFromString("5.00"),
	})
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
}

func (s *CatalogServiceSuite) TestProductNegativePriceRejected() {
	_, err := s.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       "Freebie",
		CategoryID: s.categoryID,
		Price:      decimal.RequireFromString("-1.00"),
	})
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
}

func (s *CatalogServiceSuite) TestGetProductBySlugReadThroughCache() {
	ctx := context.Background()
	s.createProduct("Keyboard", "49.00")

	fetched, err := s.catalog.GetProductBySlug(ctx, "keyboard")
	s.Require().NoError(err)
	s.Equal("Keyboard", fetched.Name)

	key := s.cache.GenerateKey("product_slug", "keyboard")
	s.NotEmpty(s.cache.values[key])

	// Served from cache: a direct row change is not visible yet.
	s.Require().NoError(s.db.Model(&entity.Product{}).
		Where("slug = ?", "keyboard").
		Update("name", "Renamed").Error)
	cached, err := s.catalog.GetProductBySlug(ctx, "keyboard")
	s.Require().NoError(err)
	s.Equal("Keyboard", cached.Name)
}

func (s *CatalogServiceSuite) TestUpdateProductInvalidatesCache() {
	ctx := context.Background()
	s.createProduct("Keyboard", "49.00")

	_, err := s.catalog.GetProductBySlug(ctx, "keyboard")
	s.Require().NoError(err)

	_, err = s.catalog.UpdateProduct(ctx, "keyboard", ProductInput{
		Name:        "Mechanical Keyboard",
		CategoryID:  s.categoryID,
		Price:       decimal.RequireFromString("79.00"),
		IsAvailable: true,
	})
	s.Require().NoError(err)

	s.Empty(s.cache.values[s.cache.GenerateKey("product_slug", "keyboard")])

	_, err = s.catalog.GetProductBySlug(ctx, "keyboard")
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))

	updated, err := s.catalog.GetProductBySlug(ctx, "mechanical-keyboard")
	s.Require().NoError(err)
	s.True(updated.Price.Equal(decimal.RequireFromString("79.00")))
}

func (s *CatalogServiceSuite) TestGetProductWithoutCache() {
	uncached := NewCatalogService(
		gormstore.NewCategoryRepository(s.db),
		gormstore.NewProductRepository(s.db),
		gormstore.NewProductImageRepository(s.db),
		nil,
	)
	s.createProduct("Mouse", "19.00")

	fetched, err := uncached.GetProductBySlug(context.Background(), "mouse")
	s.Require().NoError(err)
	s.Equal("Mouse", fetched.Name)
}

func (s *CatalogServiceSuite) TestSetThumbnailIsExclusive() {
	ctx := context.Background()
	product := s.createProduct("Monitor", "199.00")

	first, err := s.catalog.AddProductImage(ctx, product.ID, "/images/monitor-1.png")
	s.Require().NoError(err)
	second, err := s.catalog.AddProductImage(ctx, product.ID, "/images/monitor-2.png")
	s.Require().NoError(err)

	_, err = s.catalog.SetThumbnail(ctx, first.ID)
	s.Require().NoError(err)
	promoted, err := s.catalog.SetThumbnail(ctx, second.ID)
	s.Require().NoError(err)
	s.True(promoted.IsThumbnail)

	images, err := s.catalog.ListProductImages(ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Len(images, 2)
	var thumbnails int
	for _, image := range images {
		if image.IsThumbnail {
			thumbnails++
			s.Equal(second.ID, image.ID)
		}
	}
	s.Equal(1, thumbnails)
}

func (s *CatalogServiceSuite) TestAddImageUnknownProduct() {
	_, err := s.catalog.AddProductImage(context.Background(), "missing-product", "/images/x.png")
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))
}

func (s *CatalogServiceSuite) TestDeleteProduct() {
	ctx := context.Background()
	s.createProduct("Webcam", "35.00")

	s.Require().NoError(s.catalog.DeleteProduct(ctx, "webcam"))
	_, err := s.catalog.GetProductBySlug(ctx, "webcam")
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))

	s.Equal(apperror.KindNotFound, apperror.KindOf(s.catalog.DeleteProduct(ctx, "webcam")))
}
