package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
	"travelbook/internal/identity"
	"travelbook/internal/models"
	"travelbook/internal/repository"
)

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Gender          string
	DateOfBirth     *time.Time
	Password        string
	ConfirmPassword string
}

// Session is a signed credential issued for a user.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	verifier *identity.Verifier
	log      *logrus.Entry
}

func NewAuthService(userRepo repository.UserRepository, verifier *identity.Verifier, log *logrus.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		log:      log.WithField("service", "auth"),
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Gender == "" ||
		in.DateOfBirth == nil || in.Password == "" || in.ConfirmPassword == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperror.Validation("Passwords do not match")
	}

	user := &models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Gender:      in.Gender,
		DateOfBirth: in.DateOfBirth,
	}

	if err := s.userRepo.CreateUser(ctx, user, in.Password); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.UserID).Info("user registered")
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.Validation("Email and password are required")
	}

	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.UserID); err != nil {
		s.log.WithError(err).WithField("user_id", user.UserID).Warn("failed to record last login")
	}

	s.log.WithField("user_id", user.UserID).Info("user logged in")
	return s.issue(user)
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *authService) issue(user *models.User) (*Session, error) {
	token, expiresAt, err := s.verifier.Issue(user.UserID, user.Email)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
