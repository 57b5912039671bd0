package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"travelbook/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CheckPassword(user *models.User, password string) error {
	args := m.Called(user, password)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, bookID string) (*models.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so updates in one call never leak into the fixture
	book := *args.Get(0).(*models.Book)
	return &book, args.Error(1)
}

func (m *MockBookRepository) ListByOwner(ctx context.Context, userID string) ([]models.BookSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.BookSummary), args.Error(1)
}

func (m *MockBookRepository) ListFullByOwner(ctx context.Context, userID string) ([]models.Book, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) ListPublic(ctx context.Context) ([]models.PublicBook, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PublicBook), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteCascade(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Create(ctx context.Context, page *models.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPageRepository) GetByID(ctx context.Context, pageID string) (*models.Page, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	page := *args.Get(0).(*models.Page)
	return &page, args.Error(1)
}

func (m *MockPageRepository) ListByBookIDs(ctx context.Context, bookIDs []string) ([]models.Page, error) {
	args := m.Called(ctx, bookIDs)
	return args.Get(0).([]models.Page), args.Error(1)
}

func (m *MockPageRepository) UpdateExploration(ctx context.Context, page *models.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPageRepository) DeleteDetaching(ctx context.Context, bookID, pageID string) error {
	args := m.Called(ctx, bookID, pageID)
	return args.Error(0)
}

type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) Create(ctx context.Context, itinerary *models.Itinerary, experience *models.Experience) error {
	args := m.Called(ctx, itinerary, experience)
	return args.Error(0)
}

func (m *MockItineraryRepository) GetByID(ctx context.Context, itineraryID string) (*models.Itinerary, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	itinerary := *args.Get(0).(*models.Itinerary)
	return &itinerary, args.Error(1)
}

func (m *MockItineraryRepository) ListRefsByPageIDs(ctx context.Context, pageIDs []string) ([]models.ItineraryRef, error) {
	args := m.Called(ctx, pageIDs)
	return args.Get(0).([]models.ItineraryRef), args.Error(1)
}

func (m *MockItineraryRepository) ListDiscovery(ctx context.Context) ([]models.DiscoveryItinerary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.DiscoveryItinerary), args.Error(1)
}

func (m *MockItineraryRepository) AttachToPage(ctx context.Context, itineraryID, pageID string, fromPageID *string) error {
	args := m.Called(ctx, itineraryID, pageID, fromPageID)
	return args.Error(0)
}

func (m *MockItineraryRepository) DetachFromPage(ctx context.Context, itineraryID, pageID string) error {
	args := m.Called(ctx, itineraryID, pageID)
	return args.Error(0)
}

func (m *MockItineraryRepository) IncrementViews(ctx context.Context, itineraryID string) error {
	args := m.Called(ctx, itineraryID)
	return args.Error(0)
}

type MockExperienceRepository struct {
	mock.Mock
}

func (m *MockExperienceRepository) Create(ctx context.Context, experience *models.Experience) error {
	args := m.Called(ctx, experience)
	return args.Error(0)
}

func (m *MockExperienceRepository) GetByID(ctx context.Context, experienceID string) (*models.Experience, error) {
	args := m.Called(ctx, experienceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockExperienceRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]models.ExperienceWithAuthor, error) {
	args := m.Called(ctx, itineraryID)
	return args.Get(0).([]models.ExperienceWithAuthor), args.Error(1)
}

func (m *MockExperienceRepository) ToggleUpvote(ctx context.Context, experienceID, userID string) (*models.Experience, bool, error) {
	args := m.Called(ctx, experienceID, userID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Experience), args.Bool(1), args.Error(2)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, folder, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, folder, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
