package repository

import (
	"time"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetOrCreateByUserID(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	FindItemByID(itemID, cartID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(itemID, cartID uint) error
	ClearItems(cartID uint) error
	DeleteStale(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreateByUserID returns the user's cart, creating an empty one on
// first access. The unique index on carts.user_id makes concurrent first
// accesses converge on a single row: the loser of the insert race retries
// the lookup.
func (r *cartRepository) GetOrCreateByUserID(userID uint) (*model.Cart, error) {
	cart, err := r.FindByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	logger.Debug("Creating cart for user", map[string]interface{}{
		"user_id": userID,
	})

	newCart := &model.Cart{UserID: userID}
	if createErr := r.db.Create(newCart).Error; createErr != nil {
		// Lost the race against a concurrent first access; the other
		// request's row is the cart now.
		cart, err = r.FindByUserID(userID)
		if err != nil {
			logger.Error("Failed to create cart for user", createErr, map[string]interface{}{
				"user_id": userID,
			})
			return nil, createErr
		}
		return cart, nil
	}
	return newCart, nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Items.Product.Category").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByID scopes the lookup to the given cart so one user's item ID
// cannot address another user's line.
func (r *cartRepository) FindItemByID(itemID, cartID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Adding item to cart in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to add item to cart in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	r.touchCart(item.CartID)
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	r.touchCart(item.CartID)
	return nil
}

func (r *cartRepository) DeleteItem(itemID, cartID uint) error {
	if err := r.db.Delete(&model.CartItem{}, itemID).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"item_id": itemID,
		})
		return err
	}
	r.touchCart(cartID)
	return nil
}

func (r *cartRepository) ClearItems(cartID uint) error {
	logger.Debug("Clearing cart items in database", map[string]interface{}{
		"cart_id": cartID,
	})

	err := r.db.Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
	if err != nil {
		logger.Error("Failed to clear cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	r.touchCart(cartID)
	return nil
}

// touchCart refreshes the cart's activity timestamp so item mutations
// keep it out of the stale-cart purge.
func (r *cartRepository) touchCart(cartID uint) {
	err := r.db.Model(&model.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", time.Now()).Error
	if err != nil {
		logger.Error("Failed to touch cart timestamp", err, map[string]interface{}{
			"cart_id": cartID,
		})
	}
}

// DeleteStale removes carts not touched since the cutoff, items first.
func (r *cartRepository) DeleteStale(cutoff time.Time) (int64, error) {
	var staleIDs []uint
	err := r.db.Model(&model.Cart{}).
		Where("updated_at < ?", cutoff).
		Pluck("id", &staleIDs).Error
	if err != nil {
		return 0, err
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id IN ?", staleIDs).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cart{}, staleIDs).Error
	})
	if err != nil {
		logger.Error("Failed to delete stale carts from database", err, map[string]interface{}{
			"count": len(staleIDs),
		})
		return 0, err
	}
	return int64(len(staleIDs)), nil
}
