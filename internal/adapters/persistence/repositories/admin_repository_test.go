package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAdminRepository_UpdateLastLogin(t *testing.T) {
	at := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		affected int64
		existing int
		wantErr  error
	}{
		{"row updated", 1, -1, nil},
		{"value unchanged", 0, 1, nil},
		{"unknown email", 0, 0, gorm.ErrRecordNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAdminRepository(db)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE `admins` SET `last_login_date`=? WHERE email = ?")).
				WithArgs(at, "a@x.com").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			if tc.existing >= 0 {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `admins` WHERE email = ?")).
					WithArgs("a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(tc.existing))
			}

			err := repo.UpdateLastLogin(context.Background(), "a@x.com", at)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
