package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
	"travelbook/internal/models"
	"travelbook/internal/repository"
	"travelbook/internal/storage"
)

// BookUpdate carries the fields to change. Nil fields keep their value.
// Tags is the raw JSON list sent by the client.
type BookUpdate struct {
	Title       *string
	Description *string
	Tags        *string
	Visibility  *models.Visibility
	Status      *models.Status
	Image       *Upload
}

func (u BookUpdate) empty() bool {
	return u.Title == nil && u.Description == nil && u.Tags == nil && u.Visibility == nil &&
		u.Status == nil && u.Image == nil
}

type BookService interface {
	ListOwned(ctx context.Context, userID string) ([]models.BookSummary, error)
	ListOwnedWithPages(ctx context.Context, userID string) ([]models.Book, error)
	GetPublicDescription(ctx context.Context, bookID string) (*models.Book, error)
	GetOwnedPlanningView(ctx context.Context, bookID, userID string) (*models.Book, error)
	Create(ctx context.Context, userID, title string) (*models.Book, error)
	UpdateDetails(ctx context.Context, bookID, userID string, update BookUpdate) (*models.Book, error)
	Delete(ctx context.Context, bookID, userID string) error
}

type bookService struct {
	bookRepo      repository.BookRepository
	pageRepo      repository.PageRepository
	itineraryRepo repository.ItineraryRepository
	uploader      *uploader
	log           *logrus.Entry
}

func NewBookService(
	bookRepo repository.BookRepository,
	pageRepo repository.PageRepository,
	itineraryRepo repository.ItineraryRepository,
	storage storage.Storage,
	log *logrus.Logger,
) BookService {
	entry := log.WithField("service", "book")
	return &bookService{
		bookRepo:      bookRepo,
		pageRepo:      pageRepo,
		itineraryRepo: itineraryRepo,
		uploader:      &uploader{storage: storage, log: entry},
		log:           entry,
	}
}

func (s *bookService) ListOwned(ctx context.Context, userID string) ([]models.BookSummary, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	return s.bookRepo.ListByOwner(ctx, userID)
}

func (s *bookService) ListOwnedWithPages(ctx context.Context, userID string) ([]models.Book, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListFullByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.withPages(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

func (s *bookService) GetPublicDescription(ctx context.Context, bookID string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	books := []models.Book{*book}
	if err := s.withPages(ctx, books); err != nil {
		return nil, err
	}

	return &books[0], nil
}

func (s *bookService) GetOwnedPlanningView(ctx context.Context, bookID, userID string) (*models.Book, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	book, err := s.GetPublicDescription(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(book.AddedByID, userID, "You do not have access to this book"); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *bookService) Create(ctx context.Context, userID, title string) (*models.Book, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	book := &models.Book{
		Title:      title,
		Tags:       pq.StringArray{},
		Visibility: models.VisibilityPrivate,
		Status:     models.StatusPlanning,
		AddedByID:  userID,
		Pages:      []models.Page{},
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"book_id": book.BookID, "user_id": userID}).Info("book created")
	return book, nil
}

func (s *bookService) UpdateDetails(ctx context.Context, bookID, userID string, update BookUpdate) (*models.Book, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(book.AddedByID, userID, "You are not allowed to update this book"); err != nil {
		return nil, err
	}

	if update.empty() {
		return nil, apperror.Validation("At least one field must be provided")
	}

	if err := applyBookUpdate(book, update); err != nil {
		return nil, err
	}

	// the uploaded image always replaces the current one
	var objects []string
	if update.Image != nil {
		if err := validateUploads([]Upload{*update.Image}, 1); err != nil {
			return nil, err
		}

		urls, uploaded, err := s.uploader.uploadAll(ctx, "books/"+bookID, []Upload{*update.Image})
		if err != nil {
			return nil, err
		}
		book.ImageURL = urls[0]
		objects = uploaded
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		s.uploader.discard(ctx, objects)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"book_id": bookID, "user_id": userID}).Info("book updated")
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, bookID, userID string) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}

	if err := requireOwner(book.AddedByID, userID, "You are not allowed to delete this book"); err != nil {
		return err
	}

	if err := s.bookRepo.DeleteCascade(ctx, bookID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"book_id": bookID, "user_id": userID}).Info("book deleted")
	return nil
}

func applyBookUpdate(book *models.Book, update BookUpdate) error {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return apperror.Validation("Title cannot be empty")
		}
		book.Title = title
	}

	setIfPresent(&book.Description, update.Description)

	if update.Tags != nil {
		tags, err := parseTags(*update.Tags)
		if err != nil {
			return err
		}
		book.Tags = tags
	}

	if update.Visibility != nil {
		if !update.Visibility.Valid() {
			return apperror.Validation(fmt.Sprintf("Invalid visibility %q", *update.Visibility))
		}
		book.Visibility = *update.Visibility
	}

	if update.Status != nil {
		if !update.Status.Valid() {
			return apperror.Validation(fmt.Sprintf("Invalid status %q", *update.Status))
		}
		book.Status = *update.Status
	}

	return nil
}

// parseTags accepts a JSON array of strings.
func parseTags(raw string) (pq.StringArray, error) {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, apperror.Validation("Tags must be a JSON list of strings")
	}

	if tags == nil {
		tags = []string{}
	}
	return pq.StringArray(tags), nil
}

// withPages loads the pages of the books and the itinerary refs linked to those pages.
func (s *bookService) withPages(ctx context.Context, books []models.Book) error {
	bookIDs := make([]string, 0, len(books))
	for i := range books {
		books[i].Pages = []models.Page{}
		bookIDs = append(bookIDs, books[i].BookID)
	}

	pages, err := s.pageRepo.ListByBookIDs(ctx, bookIDs)
	if err != nil {
		return err
	}

	if err := loadItineraryRefs(ctx, s.itineraryRepo, pages); err != nil {
		return err
	}

	index := make(map[string]int, len(books))
	for i := range books {
		index[books[i].BookID] = i
	}
	for _, page := range pages {
		if i, ok := index[page.BookID]; ok {
			books[i].Pages = append(books[i].Pages, page)
		}
	}

	return nil
}

func loadItineraryRefs(ctx context.Context, itineraryRepo repository.ItineraryRepository, pages []models.Page) error {
	pageIDs := make([]string, 0, len(pages))
	index := make(map[string]int, len(pages))
	for i := range pages {
		pages[i].Itineraries = []models.ItineraryRef{}
		pageIDs = append(pageIDs, pages[i].PageID)
		index[pages[i].PageID] = i
	}

	refs, err := itineraryRepo.ListRefsByPageIDs(ctx, pageIDs)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		if i, ok := index[ref.PageID]; ok {
			pages[i].Itineraries = append(pages[i].Itineraries, ref)
		}
	}

	return nil
}
