package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, apperror.Dependency("category_list", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).Preload("Products").First(&category, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "category_not_found", "category not found")
	}
	return &category, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, notFoundOr(err, "category_not_found", "category not found")
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return apperror.Dependency("category_create", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return apperror.Dependency("category_update", err)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Dependency("category_delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("category_not_found", "category not found")
	}
	return nil
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Images").Preload("Category").Find(&products).Error
	if err != nil {
		return nil, apperror.Dependency("product_list", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Images").Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "product_not_found", "product not found")
	}
	return &product, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Images").Preload("Category").First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, notFoundOr(err, "product_not_found", "product not found")
	}
	return &product, nil
}

// FindByIDs is the bulk existence/price lookup used by order placement.
// Absent ids are omitted; the caller infers "not found" from the count.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperror.Dependency("product_lookup", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperror.Dependency("product_create", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return apperror.Dependency("product_update", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Dependency("product_delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("product_not_found", "product not found")
	}
	return nil
}

var _ ports.ProductImageRepository = (*ProductImageRepository)(nil)

type ProductImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) *ProductImageRepository {
	return &ProductImageRepository{db: db}
}

func (r *ProductImageRepository) ListByProduct(ctx context.Context, productID string) ([]entity.ProductImage, error) {
	var images []entity.ProductImage
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&images).Error
	if err != nil {
		return nil, apperror.Dependency("image_list", err)
	}
	return images, nil
}

func (r *ProductImageRepository) FindByID(ctx context.Context, id string) (*entity.ProductImage, error) {
	var image entity.ProductImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "image_not_found", "image not found")
	}
	return &image, nil
}

func (r *ProductImageRepository) Create(ctx context.Context, image *entity.ProductImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return apperror.Dependency("image_create", err)
	}
	return nil
}

// SetThumbnail clears every thumbnail flag for the image's product and sets
// the target image in one transaction, so a product never has two
// thumbnails observable at once.
func (r *ProductImageRepository) SetThumbnail(ctx context.Context, imageID string) (*entity.ProductImage, error) {
	var image entity.ProductImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			return err
		}
		err := tx.Model(&entity.ProductImage{}).
			Where("product_id = ?", image.ProductID).
			Update("is_thumbnail", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&entity.ProductImage{}).
			Where("id = ?", imageID).
			Update("is_thumbnail", true).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "image_not_found", "image not found")
	}
	image.IsThumbnail = true
	return &image, nil
}

func (r *ProductImageRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.ProductImage{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Dependency("image_delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundf("image_not_found", "image not found")
	}
	return nil
}
