package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAdmins struct {
	created []*models.Admin
	count   int64
	err     error
}

func (m *memoryAdmins) Create(_ context.Context, a *models.Admin) error {
	m.created = append(m.created, a)
	return nil
}
func (m *memoryAdmins) GetByEmail(context.Context, string) (*models.Admin, error) { return nil, nil }
func (m *memoryAdmins) ExistsByEmail(context.Context, string) (bool, error)       { return false, nil }
func (m *memoryAdmins) Update(context.Context, *models.Admin) error               { return nil }
func (m *memoryAdmins) UpdateLastLogin(context.Context, string, time.Time) error  { return nil }
func (m *memoryAdmins) Count(context.Context) (int64, error)                      { return m.count, m.err }

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }

func TestSeeder_CreatesDefaultAdminWhenEmpty(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "")
	repo := &memoryAdmins{}

	require.NoError(t, NewSeeder(repo, prefixHasher{}).Run(context.Background()))

	require.Len(t, repo.created, 1)
	admin := repo.created[0]
	assert.Equal(t, SeedAdminEmail, admin.Email)
	assert.Equal(t, "h:admin123456", admin.Password)
	assert.Equal(t, "ADMIN", admin.Role)
	assert.True(t, admin.IsActive)
}

func TestSeeder_SkipsWhenAdminsExist(t *testing.T) {
	repo := &memoryAdmins{count: 2}

	require.NoError(t, NewSeeder(repo, prefixHasher{}).Run(context.Background()))
	assert.Empty(t, repo.created)
}

func TestSeeder_ReportsCountError(t *testing.T) {
	repo := &memoryAdmins{err: errors.New("no such table")}

	assert.Error(t, NewSeeder(repo, prefixHasher{}).Run(context.Background()))
	assert.Empty(t, repo.created)
}
