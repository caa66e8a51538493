package repository

import (
	"testing"
	"time"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	user := &model.User{
		Username:     "cartuser",
		Email:        "cart@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
	}
	testDB.Create(user)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Test Product",
		Price:      49.99,
		CategoryID: category.ID,
		VendorID:   user.ID,
		Stock:      10,
		IsActive:   true,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestCartRepository_GetOrCreateByUserID(t *testing.T) {
	testDB, repo, user, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	// First access creates the cart
	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	// Second access returns the same cart
	again, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	testDB.Model(&model.Cart{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartRepository_CreateItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}
	err = repo.CreateItem(item)
	assert.NoError(t, err)
	assert.NotZero(t, item.ID)

	// The (cart, product) pair is unique
	dup := &model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}
	err = repo.CreateItem(dup)
	assert.Error(t, err)
}

func TestCartRepository_FindItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  3,
	}))

	found, err := repo.FindItem(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)

	_, err = repo.FindItem(cart.ID, product.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_FindItemByID_ScopedToCart(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	otherUser := &model.User{
		Username:     "otheruser",
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
	}
	testDB.Create(otherUser)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)
	otherCart, err := repo.GetOrCreateByUserID(otherUser.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item))

	// Visible through its own cart
	found, err := repo.FindItemByID(item.ID, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	// Invisible through someone else's cart
	_, err = repo.FindItemByID(item.ID, otherCart.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_UpdateItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item))

	item.Quantity = 5
	require.NoError(t, repo.UpdateItem(item))

	found, err := repo.FindItem(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)
}

func TestCartRepository_DeleteItemThenReAdd(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item))
	require.NoError(t, repo.DeleteItem(item.ID, cart.ID))

	// Items are hard-deleted, so the pair can be added again
	again := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	assert.NoError(t, repo.CreateItem(again))
}

func TestCartRepository_ClearItems(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	second := &model.Product{
		Name:       "Second Product",
		Price:      9.99,
		CategoryID: product.CategoryID,
		VendorID:   user.ID,
		Stock:      5,
		IsActive:   true,
	}
	testDB.Create(second)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}))
	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: second.ID, Quantity: 2}))

	require.NoError(t, repo.ClearItems(cart.ID))

	refreshed, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Items)
}

func TestCartRepository_DeleteStale(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}))

	// Age the cart past the cutoff
	old := time.Now().AddDate(0, 0, -60)
	testDB.Model(&model.Cart{}).Where("id = ?", cart.ID).Update("updated_at", old)

	deleted, err := repo.DeleteStale(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	testDB.Model(&model.CartItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestCartRepository_ItemMutationsTouchCart(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	backdate := func() {
		old := time.Now().AddDate(0, 0, -60)
		testDB.Model(&model.Cart{}).Where("id = ?", cart.ID).Update("updated_at", old)
	}
	cartUpdatedAt := func() time.Time {
		var fresh model.Cart
		require.NoError(t, testDB.First(&fresh, cart.ID).Error)
		return fresh.UpdatedAt
	}

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}

	backdate()
	require.NoError(t, repo.CreateItem(item))
	assert.WithinDuration(t, time.Now(), cartUpdatedAt(), time.Minute, "CreateItem should refresh the cart timestamp")

	backdate()
	item.Quantity = 3
	require.NoError(t, repo.UpdateItem(item))
	assert.WithinDuration(t, time.Now(), cartUpdatedAt(), time.Minute, "UpdateItem should refresh the cart timestamp")

	backdate()
	require.NoError(t, repo.DeleteItem(item.ID, cart.ID))
	assert.WithinDuration(t, time.Now(), cartUpdatedAt(), time.Minute, "DeleteItem should refresh the cart timestamp")

	backdate()
	require.NoError(t, repo.ClearItems(cart.ID))
	assert.WithinDuration(t, time.Now(), cartUpdatedAt(), time.Minute, "ClearItems should refresh the cart timestamp")
}

func TestCartRepository_DeleteStaleSparesActiveOldCart(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	// Cart created long ago, but the user just put something in it
	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)
	old := time.Now().AddDate(0, 0, -60)
	testDB.Model(&model.Cart{}).Where("id = ?", cart.ID).Update("updated_at", old)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}))

	deleted, err := repo.DeleteStale(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Items[0].Quantity)
}

func TestCartRepository_DeleteStaleKeepsFreshCarts(t *testing.T) {
	testDB, repo, user, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreateByUserID(user.ID)
	require.NoError(t, err)

	deleted, err := repo.DeleteStale(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
}
