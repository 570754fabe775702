package model

import (
	"time"

	"gorm.io/gorm"
)

// Department represents a department owned by exactly one college
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CollegeID uint           `gorm:"not null;index;uniqueIndex:idx_college_dept_code" json:"college"`
	Code      string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_college_dept_code" json:"code"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	LogoURL   string         `gorm:"type:varchar(512)" json:"logo,omitempty"`
	AdminID   *uint          `json:"admin,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	College      College       `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Admin        *User         `gorm:"foreignKey:AdminID;constraint:OnDelete:SET NULL" json:"-"`
	Partnerships []Partnership `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"partnerships,omitempty"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}
