package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed enumeration; anything outside these four values is
// rejected at the boundary.
const (
	RoleAdmin      = "Admin"
	RoleMarketing  = "Marketing"
	RoleSales      = "Sales"
	RoleAccounting = "Accounting"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMarketing, RoleSales, RoleAccounting:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username     string    `gorm:"column:username;type:varchar(100);uniqueIndex:uq_user_username;not null"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex:uq_user_email;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	Role         string    `gorm:"column:role;type:varchar(50);not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the common identity both authentication strategies resolve
// to: bearer tokens on the API and server-side sessions on the web surface.
// The two stores are never merged; only this shape is shared.
type Principal struct {
	ID       string
	Username string
	Role     string
}
