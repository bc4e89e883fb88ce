package routes

import (
	"testing"

	"myfinbank-admin/internal/pkg/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewContainer_SharesOneNotifier(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Notify.EmailServiceURL = "http://email-service"

	c := NewContainer(db, cfg, logging.Discard())
	require.NotNil(t, c.Notifier)
	assert.True(t, c.Notifier.IsEnabled())
	assert.NotNil(t, c.Loans)
	assert.NotNil(t, c.Customers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
