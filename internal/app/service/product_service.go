package service

import (
	"errors"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

const relatedProductLimit = 4

// ProductListInput narrows the public catalog listing. CategorySlug and
// Search compose; both empty lists the whole active catalog.
type ProductListInput struct {
	CategorySlug string
	Search       string
	Limit        int
	Offset       int
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name         string
	Description  string
	Price        float64
	ComparePrice *float64
	CategoryID   uint
	ImageURL     string
	Stock        int
	IsActive     *bool
}

// ProductDetail bundles a product with the related items shown next to it.
type ProductDetail struct {
	Product *model.Product  `json:"product"`
	Related []model.Product `json:"related_products"`
}

type ProductService interface {
	ListProducts(input ProductListInput) ([]model.Product, error)
	GetProductBySlug(slug string) (*ProductDetail, error)
	ListCategories() ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateProduct(vendorID uint, input ProductInput) (*model.Product, error)
	UpdateProduct(productID, actorID uint, actorIsAdmin bool, input ProductInput) (*model.Product, error)
	DeleteProduct(productID, actorID uint, actorIsAdmin bool) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(input ProductListInput) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_slug": input.CategorySlug,
		"search":        input.Search,
	})

	filter := repository.ProductFilter{
		Search:     input.Search,
		ActiveOnly: true,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}

	if input.CategorySlug != "" {
		category, err := s.categoryRepo.FindBySlug(input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			logger.Error("Failed to resolve category slug", err, map[string]interface{}{
				"category_slug": input.CategorySlug,
			})
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category_slug": input.CategorySlug,
			"search":        input.Search,
		})
		return nil, err
	}
	return products, nil
}

// GetProductBySlug returns an active product plus up to four other active
// products from the same category.
func (s *productService) GetProductBySlug(slug string) (*ProductDetail, error) {
	product, err := s.productRepo.FindBySlug(slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found by slug", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to find product by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	related, err := s.productRepo.FindRelated(product.CategoryID, product.ID, relatedProductLimit)
	if err != nil {
		logger.Error("Failed to find related products", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}

	return &ProductDetail{Product: product, Related: related}, nil
}

func (s *productService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (s *productService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to find category by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return category, nil
}

func (s *productService) CreateProduct(vendorID uint, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"vendor_id":   vendorID,
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		CategoryID:   input.CategoryID,
		VendorID:     vendorID,
		ImageURL:     input.ImageURL,
		Stock:        input.Stock,
		IsActive:     true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return product, nil
}

// UpdateProduct lets a vendor change their own product and an admin change
// any product. A vendor addressing someone else's product gets not-found
// rather than a hint that the ID exists.
func (s *productService) UpdateProduct(productID, actorID uint, actorIsAdmin bool, input ProductInput) (*model.Product, error) {
	product, err := s.findOwnedProduct(productID, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = input.ComparePrice
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.Stock >= 0 {
		product.Stock = input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
		"actor_id":   actorID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(productID, actorID uint, actorIsAdmin bool) error {
	if _, err := s.findOwnedProduct(productID, actorID, actorIsAdmin); err != nil {
		return err
	}

	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
		"actor_id":   actorID,
	})
	return nil
}

func (s *productService) findOwnedProduct(productID, actorID uint, actorIsAdmin bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !actorIsAdmin && product.VendorID != actorID {
		logger.Warn("Product access denied for non-owner", map[string]interface{}{
			"product_id": productID,
			"actor_id":   actorID,
		})
		return nil, ErrProductNotFound
	}
	return product, nil
}
