package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
	"travelbook/internal/models"
	"travelbook/internal/repository"
)

// ProfileUpdate carries the fields to change. Nil fields keep their value.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Bio          *string
	ProfileImage *string
	Email        *string
	PhoneNumber  *string
	Gender       *string
}

func (u ProfileUpdate) empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Bio == nil && u.ProfileImage == nil &&
		u.Email == nil && u.PhoneNumber == nil && u.Gender == nil
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)
	ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *logrus.Entry
}

func NewUserService(userRepo repository.UserRepository, log *logrus.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.WithField("service", "user"),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	if update.empty() {
		return nil, apperror.Validation("No fields to update")
	}

	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	setIfPresent(&user.FirstName, update.FirstName)
	setIfPresent(&user.LastName, update.LastName)
	setIfPresent(&user.Bio, update.Bio)
	setIfPresent(&user.ProfileImage, update.ProfileImage)
	setIfPresent(&user.PhoneNumber, update.PhoneNumber)
	setIfPresent(&user.Gender, update.Gender)
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email == "" {
			return nil, apperror.Validation("Email cannot be empty")
		}
		user.Email = email
	}

	// update user
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", userID).Info("profile updated")
	return user, nil
}

func (s *userService) ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}
	if oldPassword == "" || newPassword == "" {
		return apperror.Validation("Old and new password are required")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.CheckPassword(user, oldPassword); err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newPassword); err != nil {
		return err
	}

	s.log.WithField("user_id", userID).Info("password reset")
	return nil
}

func setIfPresent(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
