package config

import (
	"context"
	"log"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/core/domain"
)

// Default development admin, created only when the admins table is empty
const (
	SeedAdminEmail    = "admin@myfinbank.com"
	seedAdminPassword = "admin123456"
)

// Hasher hashes a plain password
type Hasher interface {
	Hash(plain string) (string, error)
}

// Seeder handles database seeding
type Seeder struct {
	admins repositories.AdminRepository
	hasher Hasher
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins repositories.AdminRepository, hasher Hasher) *Seeder {
	return &Seeder{admins: admins, hasher: hasher}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin seeds the default admin.
// This is for development/testing only; production admins register.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := s.hasher.Hash(getEnv("SEED_ADMIN_PASSWORD", seedAdminPassword))
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Email:     SeedAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Admin",
		Phone:     "0000000000",
		Role:      string(domain.RoleAdmin),
		IsActive:  true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("👤 Default admin created: %s", admin.Email)
	return nil
}
