package service

import (
	"errors"

	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// AdminDashboard is the site-wide view shown to admins and superusers.
type AdminDashboard struct {
	UserCount      int64 `json:"user_count"`
	ProductCount   int64 `json:"product_count"`
	OrderCount     int64 `json:"order_count"`
	UnreadMessages int64 `json:"unread_messages"`
}

// VendorDashboard lists the vendor's own catalog, active or not.
type VendorDashboard struct {
	Products     []model.Product `json:"products"`
	ProductCount int64           `json:"product_count"`
}

// CustomerDashboard lists the customer's order history, newest first.
type CustomerDashboard struct {
	Orders []model.Order `json:"orders"`
}

// Dashboard is the role-branched view. Exactly one of the three sections
// is populated, named by Role.
type Dashboard struct {
	Role     string             `json:"role"`
	Admin    *AdminDashboard    `json:"admin,omitempty"`
	Vendor   *VendorDashboard   `json:"vendor,omitempty"`
	Customer *CustomerDashboard `json:"customer,omitempty"`
}

type DashboardService interface {
	GetDashboard(userID uint) (*Dashboard, error)
}

type dashboardService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	contactRepo repository.ContactRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
	}
}

// GetDashboard resolves the user's view in priority order: the superuser
// flag or the admin role wins, then vendor, then customer.
func (s *dashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for dashboard", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	switch {
	case user.IsAdmin():
		return s.adminDashboard()
	case user.IsVendor():
		return s.vendorDashboard(user.ID)
	default:
		return s.customerDashboard(user.ID)
	}
}

func (s *dashboardService) adminDashboard() (*Dashboard, error) {
	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	orderCount, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	unread, err := s.contactRepo.CountUnread()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Role: string(model.RoleAdmin),
		Admin: &AdminDashboard{
			UserCount:      userCount,
			ProductCount:   productCount,
			OrderCount:     orderCount,
			UnreadMessages: unread,
		},
	}, nil
}

func (s *dashboardService) vendorDashboard(vendorID uint) (*Dashboard, error) {
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		VendorID: &vendorID,
	})
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.CountByVendor(vendorID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Role: string(model.RoleVendor),
		Vendor: &VendorDashboard{
			Products:     products,
			ProductCount: count,
		},
	}, nil
}

func (s *dashboardService) customerDashboard(userID uint) (*Dashboard, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Role:     string(model.RoleCustomer),
		Customer: &CustomerDashboard{Orders: orders},
	}, nil
}
