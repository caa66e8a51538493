package service

import (
	"errors"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"github.com/shopworks/storefront-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductInactive  = errors.New("product is not available")
)

// CartLine is one cart row priced at the product's current price.
type CartLine struct {
	ID                  uint           `json:"id"`
	Product             *model.Product `json:"product"`
	Quantity            int            `json:"quantity"`
	TotalPrice          float64        `json:"total_price"`
	FormattedTotalPrice string         `json:"formatted_total_price"`
}

// CartSummary is the full cart view: every line plus the cart totals.
type CartSummary struct {
	CartID              uint       `json:"cart_id"`
	Items               []CartLine `json:"items"`
	TotalQuantity       int        `json:"total_quantity"`
	TotalPrice          float64    `json:"total_price"`
	FormattedTotalPrice string     `json:"formatted_total_price"`
}

type CartService interface {
	GetCart(userID uint) (*CartSummary, error)
	AddItem(userID, productID uint, quantity int) (*CartSummary, error)
	UpdateItem(userID, itemID uint, quantity int) (*CartSummary, error)
	RemoveItem(userID, itemID uint) (*CartSummary, error)
	ClearCart(userID uint) (*CartSummary, error)
}

type cartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	currencySymbol string
	decimalPlaces  int
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	currencySymbol string,
	decimalPlaces int,
) CartService {
	return &cartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		currencySymbol: currencySymbol,
		decimalPlaces:  decimalPlaces,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		logger.Error("Failed to get or create cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return s.summarize(cart), nil
}

// AddItem puts a product into the cart. Adding a product already in the
// cart increments the existing line instead of creating a second one.
func (s *cartService) AddItem(userID, productID uint, quantity int) (*CartSummary, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to find product for cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	if !product.IsActive {
		logger.Warn("Rejected inactive product for cart", map[string]interface{}{
			"product_id": productID,
		})
		return nil, ErrProductInactive
	}

	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItem(cart.ID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &model.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.refresh(userID)
}

// UpdateItem sets a line's quantity. A quantity of zero or less removes
// the line.
func (s *cartService) UpdateItem(userID, itemID uint, quantity int) (*CartSummary, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(item.ID, item.CartID); err != nil {
			return nil, err
		}
	} else {
		item.Quantity = quantity
		if err := s.cartRepo.UpdateItem(item); err != nil {
			return nil, err
		}
	}

	return s.refresh(userID)
}

func (s *cartService) RemoveItem(userID, itemID uint) (*CartSummary, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(item.ID, item.CartID); err != nil {
		return nil, err
	}

	return s.refresh(userID)
}

func (s *cartService) ClearCart(userID uint) (*CartSummary, error) {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, err
	}

	return s.refresh(userID)
}

// findOwnedItem resolves an item ID within the caller's own cart. Items
// in other users' carts come back as not-found.
func (s *cartService) findOwnedItem(userID, itemID uint) (*model.CartItem, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItemByID(itemID, cart.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for user", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
			})
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *cartService) refresh(userID uint) (*CartSummary, error) {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

func (s *cartService) summarize(cart *model.Cart) *CartSummary {
	summary := &CartSummary{
		CartID: cart.ID,
		Items:  make([]CartLine, 0, len(cart.Items)),
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		lineTotal := item.TotalPrice()
		summary.Items = append(summary.Items, CartLine{
			ID:                  item.ID,
			Product:             &item.Product,
			Quantity:            item.Quantity,
			TotalPrice:          lineTotal,
			FormattedTotalPrice: util.FormatAmount(lineTotal, s.currencySymbol, s.decimalPlaces),
		})
	}

	summary.TotalQuantity = cart.TotalQuantity()
	summary.TotalPrice = cart.TotalPrice()
	summary.FormattedTotalPrice = util.FormatAmount(summary.TotalPrice, s.currencySymbol, s.decimalPlaces)
	return summary
}
