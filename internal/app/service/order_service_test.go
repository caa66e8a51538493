package service

import (
	"testing"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db       *gorm.DB
	orders   OrderService
	carts    CartService
	user     *model.User
	product  *model.Product
	category *model.Category
}

func setupOrderServiceTest(t *testing.T) *orderTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
		Address:      "1 Main Street",
	}
	testDB.Create(user)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Wireless Headphones",
		Price:      150,
		CategoryID: category.ID,
		VendorID:   user.ID,
		Stock:      10,
		IsActive:   true,
	}
	testDB.Create(product)

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	return &orderTestEnv{
		db:       testDB,
		orders:   NewOrderService(testDB, orderRepo, cartRepo, userRepo),
		carts:    NewCartService(cartRepo, productRepo, "$", 2),
		user:     user,
		product:  product,
		category: category,
	}
}

func TestOrderService_CreateOrderFromCart(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	order, err := env.orders.CreateOrderFromCart(env.user.ID, "5 Oak Avenue")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Len(t, order.OrderNumber, 20)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "5 Oak Avenue", order.ShippingAddress)
	assert.InDelta(t, 300, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 150, order.Items[0].Price, 0.001)

	// Cart is emptied by the checkout
	summary, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	// Stock was decremented
	var product model.Product
	require.NoError(t, env.db.First(&product, env.product.ID).Error)
	assert.Equal(t, 8, product.Stock)
}

func TestOrderService_CapturedPriceSurvivesCatalogEdits(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	order, err := env.orders.CreateOrderFromCart(env.user.ID, "")
	require.NoError(t, err)

	// Raise the catalog price after the sale
	env.db.Model(&model.Product{}).Where("id = ?", env.product.ID).Update("price", 999)

	reloaded, err := env.orders.GetOrder(order.ID, env.user.ID, false)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 150, reloaded.Items[0].Price, 0.001)
	assert.InDelta(t, 150, reloaded.TotalAmount, 0.001)
}

func TestOrderService_EmptyCart(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	// No cart at all
	_, err := env.orders.CreateOrderFromCart(env.user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// A cart exists but holds nothing
	_, err = env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	_, err = env.orders.CreateOrderFromCart(env.user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_InsufficientStock(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 9)
	require.NoError(t, err)

	env.db.Model(&model.Product{}).Where("id = ?", env.product.ID).Update("stock", 3)

	_, err = env.orders.CreateOrderFromCart(env.user.ID, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was committed: stock unchanged, cart intact, no order rows
	var product model.Product
	require.NoError(t, env.db.First(&product, env.product.ID).Error)
	assert.Equal(t, 3, product.Stock)

	summary, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)

	var orderCount int64
	env.db.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestOrderService_ShippingAddressFallsBackToProfile(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	order, err := env.orders.CreateOrderFromCart(env.user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "1 Main Street", order.ShippingAddress)
}

func TestOrderService_GetOrderOwnership(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	other := &model.User{
		Username:     "stranger",
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
	}
	env.db.Create(other)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrderFromCart(env.user.ID, "")
	require.NoError(t, err)

	// Owner sees it
	_, err = env.orders.GetOrder(order.ID, env.user.ID, false)
	assert.NoError(t, err)

	// A stranger gets not-found
	_, err = env.orders.GetOrder(order.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// An admin sees any order
	_, err = env.orders.GetOrder(order.ID, other.ID, true)
	assert.NoError(t, err)
}

func TestOrderService_GetUserOrdersNewestFirst(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	for i := 0; i < 2; i++ {
		_, err := env.carts.AddItem(env.user.ID, env.product.ID, 1)
		require.NoError(t, err)
		_, err = env.orders.CreateOrderFromCart(env.user.ID, "")
		require.NoError(t, err)
	}

	orders, err := env.orders.GetUserOrders(env.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.GreaterOrEqual(t, orders[0].CreatedAt.UnixNano(), orders[1].CreatedAt.UnixNano())
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	env := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.carts.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrderFromCart(env.user.ID, "")
	require.NoError(t, err)

	updated, err := env.orders.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	_, err = env.orders.UpdateOrderStatus(order.ID, model.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = env.orders.UpdateOrderStatus(order.ID+100, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
