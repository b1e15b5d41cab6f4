package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func newTestUser() *models.UserDB {
	return &models.UserDB{
		UserID:       uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
}

func userRows(id uuid.UUID, username, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash",
		"first_name", "last_name", "is_active", "last_login",
		"created_at", "updated_at",
	}).AddRow(id, username, email, "hash", nil, nil, true, nil, now, now)
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	ctx := context.Background()

	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+\s+FROM users\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(userRows(id, "alice", "alice@example.com"))

		user, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.UserID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+\s+FROM users\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	ctx := context.Background()

	id := uuid.New()

	t.Run("ByUsername", func(t *testing.T) {
		username := "charlie"
		mock.ExpectQuery(`(?s)SELECT .+\s+FROM users\s+WHERE`).
			WithArgs(username, nil).
			WillReturnRows(userRows(id, "charlie", "charlie@example.com"))

		user, err := repo.GetByUsernameOrEmail(ctx, &username, nil)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		username := "nonexistent"
		mock.ExpectQuery(`(?s)SELECT .+\s+FROM users\s+WHERE`).
			WithArgs(username, nil).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByUsernameOrEmail(ctx, &username, nil)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	user := newTestUser()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.UserID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(ctx, user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	id := uuid.New()

	t.Run("Updated", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users\s+SET password_hash`).
			WithArgs(id, "newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePassword(ctx, id, "newhash"))
	})

	t.Run("NoSuchUser", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users\s+SET password_hash`).
			WithArgs(id, "newhash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePassword(ctx, id, "newhash")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdateLastLogin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	id := uuid.New()

	mock.ExpectExec(`UPDATE users\s+SET last_login`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateLastLogin(ctx, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
