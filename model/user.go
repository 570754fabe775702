package model

import (
	"time"

	"gorm.io/gorm"
)

// Administrator roles
const (
	RoleSuperAdmin      = "SUPERADMIN"
	RoleCollegeAdmin    = "COLLEGE_ADMIN"
	RoleDepartmentAdmin = "DEPARTMENT_ADMIN"
)

// User represents an administrator account
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);not null" json:"role"`
	CollegeID    *uint          `json:"college,omitempty"`    // meaningful iff Role == COLLEGE_ADMIN
	DepartmentID *uint          `json:"department,omitempty"` // meaningful iff Role == DEPARTMENT_ADMIN
	TokenVersion int            `gorm:"default:0" json:"-"`   // Increment to invalidate all user tokens
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	College    *College    `gorm:"foreignKey:CollegeID;constraint:OnDelete:SET NULL" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
