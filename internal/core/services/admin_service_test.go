package services

import (
	"context"
	"testing"

	"myfinbank-admin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminContext(email string) context.Context {
	return domain.WithIdentity(context.Background(), domain.Identity{Subject: email, Role: domain.RoleAdmin})
}

func TestAdminService_GetProfile(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo(activeAdmin("a@x.com", "p@ssw0rd!")))

	profile, err := svc.GetProfile(adminContext("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, "Asha", profile.FirstName)

	_, err = svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.GetProfile(adminContext("gone@x.com"))
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)
}

func TestAdminService_UpdateProfile_OnlyTouchesAllowedFields(t *testing.T) {
	repo := newFakeAdminRepo(activeAdmin("a@x.com", "p@ssw0rd!"))
	svc := NewAdminService(repo)

	profile, err := svc.UpdateProfile(adminContext("a@x.com"), &UpdateProfileInput{
		FirstName:   "Asha ",
		LastName:    "",
		PhoneNumber: "9222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.FirstName)
	assert.Equal(t, "Rao", profile.LastName)
	assert.Equal(t, "9222222222", profile.PhoneNumber)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:p@ssw0rd!", stored.Password)
	assert.Equal(t, "ADMIN", stored.Role)
	assert.True(t, stored.IsActive)
}
