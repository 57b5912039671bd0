package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"travelbook/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, password string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	CheckPassword(user *models.User, password string) error
	TouchLastLogin(ctx context.Context, userID string) error
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, bookID string) (*models.Book, error)
	ListByOwner(ctx context.Context, userID string) ([]models.BookSummary, error)
	ListFullByOwner(ctx context.Context, userID string) ([]models.Book, error)
	ListPublic(ctx context.Context) ([]models.PublicBook, error)
	Update(ctx context.Context, book *models.Book) error
	DeleteCascade(ctx context.Context, bookID string) error
}

type PageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	GetByID(ctx context.Context, pageID string) (*models.Page, error)
	ListByBookIDs(ctx context.Context, bookIDs []string) ([]models.Page, error)
	UpdateExploration(ctx context.Context, page *models.Page) error
	DeleteDetaching(ctx context.Context, bookID, pageID string) error
}

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *models.Itinerary, experience *models.Experience) error
	GetByID(ctx context.Context, itineraryID string) (*models.Itinerary, error)
	ListRefsByPageIDs(ctx context.Context, pageIDs []string) ([]models.ItineraryRef, error)
	ListDiscovery(ctx context.Context) ([]models.DiscoveryItinerary, error)
	AttachToPage(ctx context.Context, itineraryID, pageID string, fromPageID *string) error
	DetachFromPage(ctx context.Context, itineraryID, pageID string) error
	IncrementViews(ctx context.Context, itineraryID string) error
}

type ExperienceRepository interface {
	Create(ctx context.Context, experience *models.Experience) error
	GetByID(ctx context.Context, experienceID string) (*models.Experience, error)
	ListByItinerary(ctx context.Context, itineraryID string) ([]models.ExperienceWithAuthor, error)
	ToggleUpvote(ctx context.Context, experienceID, userID string) (*models.Experience, bool, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User       UserRepository
	Book       BookRepository
	Page       PageRepository
	Itinerary  ItineraryRepository
	Experience ExperienceRepository
	Tables     TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Book:       NewBookRepository(db),
		Page:       NewPageRepository(db),
		Itinerary:  NewItineraryRepository(db),
		Experience: NewExperienceRepository(db),
		Tables:     NewTablesRepository(db),
	}
}
