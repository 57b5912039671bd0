package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travelbook/internal/models"
	"travelbook/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update service.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListOwned(ctx context.Context, userID string) ([]models.BookSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookSummary), args.Error(1)
}

func (m *MockBookService) ListOwnedWithPages(ctx context.Context, userID string) ([]models.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookService) GetPublicDescription(ctx context.Context, bookID string) (*models.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) GetOwnedPlanningView(ctx context.Context, bookID, userID string) (*models.Book, error) {
	args := m.Called(ctx, bookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Create(ctx context.Context, userID, title string) (*models.Book, error) {
	args := m.Called(ctx, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) UpdateDetails(ctx context.Context, bookID, userID string, update service.BookUpdate) (*models.Book, error) {
	args := m.Called(ctx, bookID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, bookID, userID string) error {
	args := m.Called(ctx, bookID, userID)
	return args.Error(0)
}

type MockPageService struct {
	mock.Mock
}

func (m *MockPageService) AddPage(ctx context.Context, bookID, userID, title string) (*models.Page, error) {
	args := m.Called(ctx, bookID, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockPageService) RecordExploration(ctx context.Context, pageID, userID string, in service.Exploration) (*models.Page, error) {
	args := m.Called(ctx, pageID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockPageService) AttachItinerary(ctx context.Context, pageID, itineraryID, userID string) (*models.Page, error) {
	args := m.Called(ctx, pageID, itineraryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockPageService) DetachItinerary(ctx context.Context, pageID, itineraryID, userID string) error {
	args := m.Called(ctx, pageID, itineraryID, userID)
	return args.Error(0)
}

func (m *MockPageService) DeletePage(ctx context.Context, bookID, pageID, userID string) error {
	args := m.Called(ctx, bookID, pageID, userID)
	return args.Error(0)
}

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) Create(ctx context.Context, pageID, authorID string, in service.ItineraryInput) (*models.CreatedItinerary, error) {
	args := m.Called(ctx, pageID, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatedItinerary), args.Error(1)
}

func (m *MockItineraryService) GetDetail(ctx context.Context, itineraryID string) (*models.ItineraryDetail, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItineraryDetail), args.Error(1)
}

func (m *MockItineraryService) AddExperience(ctx context.Context, itineraryID, authorID, comment string) (*models.Experience, error) {
	args := m.Called(ctx, itineraryID, authorID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockItineraryService) ToggleUpvote(ctx context.Context, itineraryID, experienceID, userID string) (*models.UpvoteResult, error) {
	args := m.Called(ctx, itineraryID, experienceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpvoteResult), args.Error(1)
}

type MockDiscoveryService struct {
	mock.Mock
}

func (m *MockDiscoveryService) ListAll(ctx context.Context) (*models.Discovery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Discovery), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}
