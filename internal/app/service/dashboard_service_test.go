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

func setupDashboardTest(t *testing.T) (*gorm.DB, DashboardService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	contactRepo := repository.NewContactRepository(testDB)

	return testDB, NewDashboardService(userRepo, productRepo, orderRepo, contactRepo)
}

func TestDashboardService_AdminView(t *testing.T) {
	testDB, svc := setupDashboardTest(t)
	defer db.CleanupTestDB(testDB)

	admin := &model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
	}
	customer := &model.User{
		Username:     "customer",
		Email:        "customer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
	}
	testDB.Create(admin)
	testDB.Create(customer)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)
	testDB.Create(&model.Product{
		Name: "Widget", Price: 10, CategoryID: category.ID, VendorID: admin.ID, IsActive: true,
	})
	testDB.Create(&model.ContactMessage{
		Name: "A", Email: "a@example.com", Subject: "s", Message: "m",
	})
	testDB.Create(&model.ContactMessage{
		Name: "B", Email: "b@example.com", Subject: "s", Message: "m", IsRead: true,
	})

	dashboard, err := svc.GetDashboard(admin.ID)
	require.NoError(t, err)

	assert.Equal(t, "admin", dashboard.Role)
	require.NotNil(t, dashboard.Admin)
	assert.Nil(t, dashboard.Vendor)
	assert.Nil(t, dashboard.Customer)
	assert.Equal(t, int64(2), dashboard.Admin.UserCount)
	assert.Equal(t, int64(1), dashboard.Admin.ProductCount)
	assert.Equal(t, int64(0), dashboard.Admin.OrderCount)
	assert.Equal(t, int64(1), dashboard.Admin.UnreadMessages)
}

func TestDashboardService_SuperuserGetsAdminViewRegardlessOfRole(t *testing.T) {
	testDB, svc := setupDashboardTest(t)
	defer db.CleanupTestDB(testDB)

	superuser := &model.User{
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
		IsSuperuser:  true,
	}
	testDB.Create(superuser)

	dashboard, err := svc.GetDashboard(superuser.ID)
	require.NoError(t, err)

	assert.Equal(t, "admin", dashboard.Role)
	assert.NotNil(t, dashboard.Admin)
	assert.Nil(t, dashboard.Customer)
}

func TestDashboardService_VendorView(t *testing.T) {
	testDB, svc := setupDashboardTest(t)
	defer db.CleanupTestDB(testDB)

	vendor := &model.User{
		Username:     "vendor",
		Email:        "vendor@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVendor,
	}
	otherVendor := &model.User{
		Username:     "othervendor",
		Email:        "othervendor@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVendor,
	}
	testDB.Create(vendor)
	testDB.Create(otherVendor)

	category := &model.Category{Name: "Clothing"}
	testDB.Create(category)

	testDB.Create(&model.Product{
		Name: "Own Active", Price: 10, CategoryID: category.ID, VendorID: vendor.ID, IsActive: true,
	})
	testDB.Create(&model.Product{
		Name: "Own Inactive", Price: 10, CategoryID: category.ID, VendorID: vendor.ID, IsActive: false,
	})
	testDB.Create(&model.Product{
		Name: "Someone Elses", Price: 10, CategoryID: category.ID, VendorID: otherVendor.ID, IsActive: true,
	})

	dashboard, err := svc.GetDashboard(vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, "vendor", dashboard.Role)
	require.NotNil(t, dashboard.Vendor)
	assert.Nil(t, dashboard.Admin)

	// The vendor sees all of their own products, active or not, and
	// nobody else's
	assert.Equal(t, int64(2), dashboard.Vendor.ProductCount)
	require.Len(t, dashboard.Vendor.Products, 2)
	for _, p := range dashboard.Vendor.Products {
		assert.Equal(t, vendor.ID, p.VendorID)
	}
}

func TestDashboardService_CustomerView(t *testing.T) {
	testDB, svc := setupDashboardTest(t)
	defer db.CleanupTestDB(testDB)

	customer := &model.User{
		Username:     "customer",
		Email:        "customer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
	}
	testDB.Create(customer)

	testDB.Create(&model.Order{
		UserID:      customer.ID,
		TotalAmount: 42,
		Status:      model.OrderStatusPending,
	})

	dashboard, err := svc.GetDashboard(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, "customer", dashboard.Role)
	require.NotNil(t, dashboard.Customer)
	assert.Nil(t, dashboard.Admin)
	assert.Nil(t, dashboard.Vendor)
	assert.Len(t, dashboard.Customer.Orders, 1)
}

func TestDashboardService_UnknownUser(t *testing.T) {
	testDB, svc := setupDashboardTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetDashboard(12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
