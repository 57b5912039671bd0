package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
	"travelbook/internal/models"
	"travelbook/internal/repository"
	"travelbook/internal/storage"
)

// Exploration is what a user records about a page once visited. Nil fields keep their value.
type Exploration struct {
	Title       *string
	Description *string
	Tips        *string
	Location    *models.Location
	Images      []Upload
}

type PageService interface {
	AddPage(ctx context.Context, bookID, userID, title string) (*models.Page, error)
	RecordExploration(ctx context.Context, pageID, userID string, in Exploration) (*models.Page, error)
	AttachItinerary(ctx context.Context, pageID, itineraryID, userID string) (*models.Page, error)
	DetachItinerary(ctx context.Context, pageID, itineraryID, userID string) error
	DeletePage(ctx context.Context, bookID, pageID, userID string) error
}

type pageService struct {
	bookRepo      repository.BookRepository
	pageRepo      repository.PageRepository
	itineraryRepo repository.ItineraryRepository
	uploader      *uploader
	maxImages     int
	log           *logrus.Entry
}

func NewPageService(
	bookRepo repository.BookRepository,
	pageRepo repository.PageRepository,
	itineraryRepo repository.ItineraryRepository,
	storage storage.Storage,
	maxImages int,
	log *logrus.Logger,
) PageService {
	entry := log.WithField("service", "page")
	return &pageService{
		bookRepo:      bookRepo,
		pageRepo:      pageRepo,
		itineraryRepo: itineraryRepo,
		uploader:      &uploader{storage: storage, log: entry},
		maxImages:     maxImages,
		log:           entry,
	}
}

func (s *pageService) AddPage(ctx context.Context, bookID, userID, title string) (*models.Page, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(book.AddedByID, userID, "You are not allowed to add pages to this book"); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	page := &models.Page{
		BookID:      bookID,
		Title:       title,
		Images:      pq.StringArray{},
		Status:      models.StatusPlanning,
		Itineraries: []models.ItineraryRef{},
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"book_id": bookID, "page_id": page.PageID}).Info("page added")
	return page, nil
}

func (s *pageService) RecordExploration(ctx context.Context, pageID, userID string, in Exploration) (*models.Page, error) {
	page, err := s.ownedPage(ctx, pageID, userID)
	if err != nil {
		return nil, err
	}

	if err := validateUploads(in.Images, s.maxImages); err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.Validation("Title cannot be empty")
		}
		page.Title = title
	}
	setIfPresent(&page.Description, in.Description)
	setIfPresent(&page.Tips, in.Tips)
	if in.Location != nil {
		page.Location = in.Location
	}
	page.Status = models.StatusExplored

	// no new images keeps the previous ones
	var objects []string
	if len(in.Images) > 0 {
		urls, uploaded, err := s.uploader.uploadAll(ctx, "pages/"+pageID, in.Images)
		if err != nil {
			return nil, err
		}
		page.Images = urls
		objects = uploaded
	}

	if err := s.pageRepo.UpdateExploration(ctx, page); err != nil {
		s.uploader.discard(ctx, objects)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"page_id": pageID, "images": len(in.Images)}).Info("page explored")
	return page, nil
}

func (s *pageService) AttachItinerary(ctx context.Context, pageID, itineraryID, userID string) (*models.Page, error) {
	if itineraryID == "" {
		return nil, apperror.Validation("itineraryId is required")
	}

	page, err := s.ownedPage(ctx, pageID, userID)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	// moving a link is only allowed between pages of the same owner
	if itinerary.PageID != nil && *itinerary.PageID != pageID {
		if err := s.requireLinkOwner(ctx, *itinerary.PageID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.itineraryRepo.AttachToPage(ctx, itineraryID, pageID, itinerary.PageID); err != nil {
		return nil, err
	}

	pages := []models.Page{*page}
	if err := loadItineraryRefs(ctx, s.itineraryRepo, pages); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"page_id": pageID, "itinerary_id": itineraryID}).Info("itinerary attached")
	return &pages[0], nil
}

func (s *pageService) DetachItinerary(ctx context.Context, pageID, itineraryID, userID string) error {
	if _, err := s.ownedPage(ctx, pageID, userID); err != nil {
		return err
	}

	if err := s.itineraryRepo.DetachFromPage(ctx, itineraryID, pageID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"page_id": pageID, "itinerary_id": itineraryID}).Info("itinerary detached")
	return nil
}

func (s *pageService) DeletePage(ctx context.Context, bookID, pageID, userID string) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}

	if err := requireOwner(book.AddedByID, userID, "You are not allowed to delete pages from this book"); err != nil {
		return err
	}

	if err := s.pageRepo.DeleteDetaching(ctx, bookID, pageID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Page not found in this book")
		}
		return err
	}

	s.log.WithFields(logrus.Fields{"book_id": bookID, "page_id": pageID}).Info("page deleted")
	return nil
}

// ownedPage loads the page and checks that userID owns the book it belongs to.
func (s *pageService) ownedPage(ctx context.Context, pageID, userID string) (*models.Page, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("Page not found").WithDetails(map[string]any{"resource": "page"})
		}
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, page.BookID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(book.AddedByID, userID, "You are not allowed to modify this page"); err != nil {
		return nil, err
	}

	return page, nil
}

// requireLinkOwner fails with Conflict unless userID owns the book holding currentPageID.
func (s *pageService) requireLinkOwner(ctx context.Context, currentPageID, userID string) error {
	current, err := s.pageRepo.GetByID(ctx, currentPageID)
	if err != nil {
		return err
	}

	book, err := s.bookRepo.GetByID(ctx, current.BookID)
	if err != nil {
		return err
	}

	if book.AddedByID != userID {
		return apperror.Conflict("Itinerary is already linked to another page")
	}
	return nil
}
