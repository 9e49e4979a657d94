package user

import "time"

// Role is a single enumerated field instead of independent boolean flags, so
// conflicting or zero-role states cannot be stored.
const (
	RoleEmployee = "employee"
	RoleCompany  = "company"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleCompany, RoleHR, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
