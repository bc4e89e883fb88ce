package services

import (
	"context"
	"errors"
	"strings"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/core/domain"

	"gorm.io/gorm"
)

// AdminService handles the signed-in admin's own profile
type AdminService struct {
	adminRepo repositories.AdminRepository
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// UpdateProfileInput represents update profile input (for self).
// Blank fields are left unchanged.
type UpdateProfileInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// GetProfile returns the admin bound to the request identity
func (s *AdminService) GetProfile(ctx context.Context) (*models.AdminResponse, error) {
	admin, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return admin.ToResponse(), nil
}

// UpdateProfile changes the name and phone of the admin bound to the
// request identity. Email, role and password never change here.
func (s *AdminService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*models.AdminResponse, error) {
	admin, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.FirstName); v != "" {
		admin.FirstName = v
	}
	if v := strings.TrimSpace(input.LastName); v != "" {
		admin.LastName = v
	}
	if v := strings.TrimSpace(input.PhoneNumber); v != "" {
		admin.Phone = v
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "update admin", err)
	}

	return admin.ToResponse(), nil
}

func (s *AdminService) current(ctx context.Context) (*models.Admin, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	admin, err := s.adminRepo.GetByEmail(ctx, id.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "load admin", err)
	}
	return admin, nil
}
