package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
	RoleVendor   UserRole = "vendor"
)

// ValidRole reports whether the given role is one of the closed set.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleCustomer, RoleVendor:
		return true
	}
	return false
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	IsSuperuser  bool           `gorm:"default:false" json:"is_superuser"`
	Phone        string         `json:"phone"`
	Address      string         `gorm:"type:text" json:"address"`
	DateOfBirth  *time.Time     `json:"date_of_birth,omitempty"`
	ProfileImage string         `json:"profile_image"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Cart     *Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Products []Product `gorm:"foreignKey:VendorID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin is satisfied by the admin role or the superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
