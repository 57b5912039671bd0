package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/logger"
	"travelbook/internal/models"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	verifier := identity.NewVerifier("test-secret", time.Hour)
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	valid := RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           " Ada@Example.com ",
		Gender:          "female",
		DateOfBirth:     &dob,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	t.Run("issues a token for the new user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("CreateUser", ctx, mock.AnythingOfType("*models.User"), "secret123").
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).UserID = "u1"
			}).
			Return(nil)

		service := NewAuthService(users, verifier, logger.Discard())
		session, err := service.Register(ctx, valid)
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", session.User.Email)
		id, err := verifier.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", id.UserID)
	})

	t.Run("passwords differ", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewAuthService(users, verifier, logger.Discard())

		in := valid
		in.ConfirmPassword = "other"
		_, err := service.Register(ctx, in)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing field", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), verifier, logger.Discard())

		in := valid
		in.DateOfBirth = nil
		_, err := service.Register(ctx, in)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})

	t.Run("email taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("CreateUser", ctx, mock.Anything, mock.Anything).Return(apperror.Conflict("User already exists"))

		service := NewAuthService(users, verifier, logger.Discard())
		_, err := service.Register(ctx, valid)
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	verifier := identity.NewVerifier("test-secret", time.Hour)

	t.Run("success records the login", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("VerifyPassword", ctx, "ada@example.com", "secret123").
			Return(&models.User{UserID: "u1", Email: "ada@example.com"}, nil)
		users.On("TouchLastLogin", ctx, "u1").Return(nil)

		service := NewAuthService(users, verifier, logger.Discard())
		session, err := service.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("VerifyPassword", ctx, "ada@example.com", "nope").
			Return(nil, apperror.Unauthenticated("Password is incorrect"))

		service := NewAuthService(users, verifier, logger.Discard())
		_, err := service.Login(ctx, "ada@example.com", "nope")
		assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
	})
}

func TestUserService_UpdateProfileKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	users.On("GetUserByID", ctx, "u1").
		Return(&models.User{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Bio: "old"}, nil)
	users.On("UpdateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	service := NewUserService(users, logger.Discard())
	user, err := service.UpdateProfile(ctx, "u1", ProfileUpdate{Bio: strPtr("new")})
	require.NoError(t, err)

	assert.Equal(t, "new", user.Bio)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UserID: "u1"}

	t.Run("old password must match", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByID", ctx, "u1").Return(user, nil)
		users.On("CheckPassword", user, "wrong").Return(apperror.Unauthenticated("Password is incorrect"))

		service := NewUserService(users, logger.Discard())
		err := service.ResetPassword(ctx, "u1", "wrong", "next")
		assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rehashes the new password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByID", ctx, "u1").Return(user, nil)
		users.On("CheckPassword", user, "old").Return(nil)
		users.On("UpdatePassword", ctx, "u1", "next").Return(nil)

		service := NewUserService(users, logger.Discard())
		require.NoError(t, service.ResetPassword(ctx, "u1", "old", "next"))
		users.AssertExpectations(t)
	})

	t.Run("both passwords required", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository), logger.Discard())
		err := service.ResetPassword(ctx, "u1", "", "next")
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})
}

func TestDiscoveryService_ListAll(t *testing.T) {
	ctx := context.Background()
	books := new(MockBookRepository)
	itineraries := new(MockItineraryRepository)

	itineraries.On("ListDiscovery", ctx).Return([]models.DiscoveryItinerary{{ItineraryID: "i1", Image: "http://img/1.png"}}, nil)
	books.On("ListPublic", ctx).Return([]models.PublicBook{{BookID: "b1", AddedBy: "Ada Lovelace"}}, nil)

	discovery, err := NewDiscoveryService(books, itineraries).ListAll(ctx)
	require.NoError(t, err)

	require.Len(t, discovery.Itineraries, 1)
	require.Len(t, discovery.PublicBooks, 1)
	assert.Equal(t, "Ada Lovelace", discovery.PublicBooks[0].AddedBy)
}
