package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/jwt"
	"myfinbank-admin/internal/pkg/logging"
	"myfinbank-admin/internal/pkg/password"

	"gorm.io/gorm"
)

// timingPassword is hashed once and compared against when the email is
// unknown, so unknown and wrong-password logins cost the same.
const timingPassword = "myfinbank-admin-timing-equalizer"

// AuthService creates, verifies and resolves admin sessions
type AuthService struct {
	adminRepo repositories.AdminRepository
	codec     *jwt.Codec
	hasher    PasswordHasher
	cfg       *config.Config
	logger    logging.Logger
	now       Clock

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	codec *jwt.Codec,
	hasher PasswordHasher,
	cfg *config.Config,
	logger logging.Logger,
) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		codec:     codec,
		hasher:    hasher,
		cfg:       cfg,
		logger:    logger.With("component", "auth_service"),
		now:       time.Now,
	}
}

// WithClock replaces the time source used for issuing and verifying tokens
func (s *AuthService) WithClock(clock Clock) *AuthService {
	s.now = clock
	return s
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login
type LoginResult struct {
	Token       string                `json:"token"`
	RedirectURL string                `json:"redirectUrl"`
	ExpiresIn   int                   `json:"expiresIn"`
	Admin       *models.AdminResponse `json:"admin"`
}

// RegisterInput represents admin registration input
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Login authenticates an admin. Every mismatch (unknown email, inactive
// account, wrong password) yields domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(input.Password, s.timingHash())
			s.logger.Info(ctx, "login rejected", "email", email, "reason", "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Wrap(domain.KindInternal, "load admin", err)
	}

	if !s.hasher.Verify(input.Password, admin.Password) {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	if !admin.IsActive {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.codec.Issue(admin.Email, now, s.cfg.TokenTTL())
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "issue token", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.Email, now); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "record last login", err)
	}
	admin.LastLoginAt = &now

	s.logger.Info(ctx, "admin logged in", "email", admin.Email)

	return &LoginResult{
		Token:       token,
		RedirectURL: s.cfg.Auth.DashboardPath,
		ExpiresIn:   int(s.cfg.TokenTTL().Seconds()),
		Admin:       admin.ToResponse(),
	}, nil
}

// Probe reports whether token is currently valid and its subject.
// It has no side effects.
func (s *AuthService) Probe(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	subject, err := s.codec.Subject(token, s.now())
	if err != nil {
		return "", false
	}
	return subject, true
}

// Authenticate resolves token into an identity for an active admin.
// All failures are tagged domain.KindAuthFailure; the message names the reason.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	subject, err := s.codec.Subject(token, s.now())
	if err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindAuthFailure, "invalid token", err)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, domain.Wrap(domain.KindAuthFailure, "unknown subject", domain.ErrUnauthenticated)
		}
		return domain.Identity{}, domain.Wrap(domain.KindAuthFailure, "subject lookup failed", err)
	}
	if !admin.IsActive {
		return domain.Identity{}, domain.Wrap(domain.KindAuthFailure, "inactive subject", domain.ErrUnauthenticated)
	}

	return domain.Identity{Subject: admin.Email, Role: domain.RoleAdmin}, nil
}

// Register creates a new active admin account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.AdminResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	phone := strings.TrimSpace(input.PhoneNumber)

	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, domain.NewError(domain.KindInvalidInput, "a valid email is required")
	case !password.ValidatePassword(input.Password):
		return nil, domain.NewError(domain.KindInvalidInput, "password must be at least 8 characters")
	case firstName == "" || lastName == "":
		return nil, domain.NewError(domain.KindInvalidInput, "first name and last name are required")
	case phone == "":
		return nil, domain.NewError(domain.KindInvalidInput, "phone number is required")
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "check email", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "hash password", err)
	}

	admin := &models.Admin{
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Role:      string(domain.RoleAdmin),
		IsActive:  true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "create admin", err)
	}

	s.logger.Info(ctx, "admin registered", "email", admin.Email)
	return admin.ToResponse(), nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(timingPassword)
	})
	return s.dummyHash
}
