package model

import (
	"time"

	"gorm.io/gorm"
)

// College represents a college in the organizational hierarchy
type College struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"` // e.g., "CCS", "CBA"
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	LogoURL   string         `gorm:"type:varchar(512)" json:"logo,omitempty"`
	AdminID   *uint          `json:"admin,omitempty"` // user managing this college, if assigned
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Admin       *User        `gorm:"foreignKey:AdminID;constraint:OnDelete:SET NULL" json:"-"`
	Departments []Department `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"departments,omitempty"`
}

// TableName specifies the table name for College
func (College) TableName() string {
	return "colleges"
}
