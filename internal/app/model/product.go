package model

import (
	"math"
	"time"

	"github.com/shopworks/storefront-backend/pkg/util"
	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	ComparePrice *float64       `json:"compare_price,omitempty"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	VendorID     uint           `gorm:"not null;index" json:"vendor_id"`
	ImageURL     string         `json:"image_url"`
	Stock        int            `gorm:"default:0" json:"stock"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Vendor     User        `gorm:"foreignKey:VendorID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeCreate derives the slug from the name when none was provided.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Name)
	}
	return nil
}

// IsOnSale reports whether the product has a compare price above its
// selling price.
func (p *Product) IsOnSale() bool {
	return p.ComparePrice != nil && *p.ComparePrice > p.Price
}

// DiscountPercentage is round((compare - price) / compare * 100), or 0
// when the product is not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.IsOnSale() {
		return 0
	}
	discount := (*p.ComparePrice - p.Price) / *p.ComparePrice * 100
	return int(math.Round(discount))
}
