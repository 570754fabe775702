package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given database
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedSuperAdmin(); err != nil {
		return fmt.Errorf("failed to seed superadmin: %w", err)
	}

	if err := s.SeedSampleHierarchy(); err != nil {
		return fmt.Errorf("failed to seed sample hierarchy: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedSuperAdmin creates the default superadmin account if none exists.
// The password comes from SUPERADMIN_PASSWORD; without it the account is
// skipped rather than created with a known default.
func (s *Seeder) SeedSuperAdmin() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Superadmin already exists, skipping...")
		return nil
	}

	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		log.Println("SUPERADMIN_PASSWORD not set, skipping superadmin creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	superadmin := model.User{
		Username:     "superadmin",
		Email:        "superadmin@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleSuperAdmin,
	}
	if err := s.db.Create(&superadmin).Error; err != nil {
		return err
	}

	log.Println("Superadmin account created")
	return nil
}

// SeedSampleHierarchy creates a small college/department hierarchy for
// development environments. Skipped when any college already exists and in
// production.
func (s *Seeder) SeedSampleHierarchy() error {
	if os.Getenv("GO_ENV") == "production" {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.College{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Colleges already exist, skipping sample hierarchy...")
		return nil
	}

	colleges := []struct {
		code        string
		name        string
		departments []struct{ code, name string }
	}{
		{
			code: "CCS", name: "College of Computer Studies",
			departments: []struct{ code, name string }{
				{"IT", "Information Technology"},
				{"CS", "Computer Science"},
			},
		},
		{
			code: "CBA", name: "College of Business Administration",
			departments: []struct{ code, name string }{
				{"MKT", "Marketing"},
			},
		},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range colleges {
			college := model.College{Code: c.code, Name: c.name}
			if err := tx.Create(&college).Error; err != nil {
				return err
			}
			for _, d := range c.departments {
				dept := model.Department{CollegeID: college.ID, Code: d.code, Name: d.name}
				if err := tx.Create(&dept).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Sample hierarchy created")
		return nil
	})
}
