package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"travelbook/internal/apperror"
	"travelbook/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func userRows(hash *string) *sqlmock.Rows {
	var hashValue any
	if hash != nil {
		hashValue = *hash
	}

	return sqlmock.NewRows([]string{
		"user_id", "first_name", "last_name", "email", "password_hash", "gender", "date_of_birth",
		"bio", "profile_image", "phone_number", "date_joined", "last_login",
	}).AddRow("u1", "Ada", "Lovelace", "ada@example.com", hashValue, "female", nil,
		"", "", "", time.Now(), nil)
}

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", "ada@example.com", sqlmock.AnyArg(),
				"female", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Gender: "female"}
		err := repo.CreateUser(ctx, user, "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		require.NotNil(t, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("secret123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, &models.User{Email: "ada@example.com"}, "secret123")

		assert.True(t, errors.Is(err, apperror.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no password leaves the hash empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &models.User{Email: "oauth@example.com"}
		require.NoError(t, repo.CreateUser(ctx, user, ""))
		assert.Nil(t, user.PasswordHash)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
			WithArgs("u1").
			WillReturnRows(userRows(nil))

		user, err := repo.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.DisplayName())
		assert.Nil(t, user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByID(ctx, "missing")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		password string
		wantCode apperror.Code
	}{
		{name: "correct password", rows: userRows(&hash), password: "secret123"},
		{name: "wrong password", rows: userRows(&hash), password: "nope", wantCode: apperror.CodeUnauthenticated},
		{name: "oauth only account", rows: userRows(nil), password: "secret123", wantCode: apperror.CodeUnauthenticated},
		{name: "unknown email", queryErr: sql.ErrNoRows, password: "secret123", wantCode: apperror.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			expect := mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).WithArgs("ada@example.com")
			if tt.queryErr != nil {
				expect.WillReturnError(tt.queryErr)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			user, err := repo.VerifyPassword(ctx, "ada@example.com", tt.password)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "u1", user.UserID)
				return
			}
			assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
		})
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("no rows is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateUser(ctx, &models.User{UserID: "missing"})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.UpdateUser(ctx, &models.User{UserID: "u1", Email: "taken@example.com"})
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $1 WHERE user_id = $2")).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "newsecret"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
