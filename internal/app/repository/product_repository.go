package repository

import (
	"fmt"
	"strings"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows a catalog listing. The zero value lists every
// product in insertion order.
type ProductFilter struct {
	CategoryID *uint
	VendorID   *uint
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string, activeOnly bool) (*model.Product, error)
	FindRelated(categoryID, excludeID uint, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	Count() (int64, error)
	CountByVendor(vendorID uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
		"vendor_id":   product.VendorID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"category_id": product.CategoryID,
			"vendor_id":   product.VendorID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"vendor_id":   filter.VendorID,
		"search":      filter.Search,
		"active_only": filter.ActiveOnly,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.db.Model(&model.Product{}).Preload("Category")

	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.VendorID != nil {
		query = query.Where("products.vendor_id = ?", *filter.VendorID)
	}

	if filter.Search != "" {
		// Case-insensitive substring match against the product name,
		// description, or the owning category's name.
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where(
				"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
				like, like, like,
			)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string, activeOnly bool) (*model.Product, error) {
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var product model.Product
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindRelated(categoryID, excludeID uint, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("category_id = ? AND id <> ? AND is_active = ?", categoryID, excludeID, true).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find related products in database", err, map[string]interface{}{
			"category_id": categoryID,
			"exclude_id":  excludeID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count products in database", err, nil)
		return 0, err
	}
	return count, nil
}

func (r *productRepository) CountByVendor(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count vendor products in database", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return 0, err
	}
	return count, nil
}
