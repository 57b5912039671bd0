package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"travelbook/internal/apperror"
	"travelbook/internal/models"
)

const userColumns = `user_id, first_name, last_name, email, password_hash, gender, date_of_birth,
	bio, profile_image, phone_number, date_joined, last_login`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isInvalidID reports that Postgres rejected an id argument, e.g. a malformed uuid.
// Such an id can never resolve, so callers treat it like a missing row.
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// empty password means an externally verified account
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hash := string(hashedPassword)
		user.PasswordHash = &hash
	}

	user.UserID = uuid.New().String()
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}

	query := `
		INSERT INTO users (user_id, first_name, last_name, email, password_hash, gender, date_of_birth, date_joined)
		VALUES (:user_id, :first_name, :last_name, :email, :password_hash, :gender, :date_of_birth, :date_joined)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("User already exists. Please sign in to continue.")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) CheckPassword(user *models.User, password string) error {
	if user.PasswordHash == nil {
		return apperror.Unauthenticated("This account has no password. Sign in with your linked provider.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return apperror.Unauthenticated("Password is incorrect")
	}

	return nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthenticated("User is not registered. Please sign up to continue.")
		}
		return nil, err
	}

	if err := r.CheckPassword(user, password); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, email = :email, gender = :gender,
			bio = :bio, profile_image = :profile_image, phone_number = :phone_number
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email is already in use")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return expectAffected(result, apperror.NotFound("User not found"))
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE users SET password_hash = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result, apperror.NotFound("User not found"))
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_login = $1 WHERE user_id = $2`

	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// expectAffected returns notFound when the statement touched no rows.
func expectAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
