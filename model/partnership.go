package model

import (
	"time"

	"gorm.io/gorm"
)

// Partnership status values
const (
	PartnershipStatusActive   = "active"
	PartnershipStatusInactive = "inactive"
)

// Contact phone types
const (
	PhoneTypeCell      = "cell"
	PhoneTypeTelephone = "telephone"
)

// Partnership represents an external partnership owned by a department
type Partnership struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DepartmentID uint   `gorm:"not null;index" json:"department"`
	Title        string `gorm:"type:varchar(255);not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Status       string `gorm:"type:varchar(20);default:'active'" json:"status"` // active, inactive
	LogoURL      string `gorm:"type:varchar(512)" json:"logo,omitempty"`

	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	ContactEmail  string `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	ContactPhone  string `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	PhoneType     string `gorm:"type:varchar(20)" json:"phone_type,omitempty"` // cell, telephone

	DateStarted time.Time  `gorm:"not null" json:"date_started"`
	DateEnded   *time.Time `json:"date_ended,omitempty"` // nil while the partnership is ongoing

	CreatedByID *uint          `json:"created_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedBy  *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Partnership
func (Partnership) TableName() string {
	return "partnerships"
}

// Expired reports whether the partnership's end date has passed
func (p *Partnership) Expired(now time.Time) bool {
	return p.DateEnded != nil && p.DateEnded.Before(now)
}
