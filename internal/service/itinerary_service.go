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

const (
	detailDateLayout = "Jan 2, 2006"
	maxHighlights    = 5
)

type ItineraryInput struct {
	Title       string
	Description string
	Caption     string
	Category    models.Category
	Rating      float64
	Location    models.Location
	Images      []Upload
	// Experience is an optional first comment posted with the itinerary.
	Experience string
}

type ItineraryService interface {
	Create(ctx context.Context, pageID, authorID string, in ItineraryInput) (*models.CreatedItinerary, error)
	GetDetail(ctx context.Context, itineraryID string) (*models.ItineraryDetail, error)
	AddExperience(ctx context.Context, itineraryID, authorID, comment string) (*models.Experience, error)
	ToggleUpvote(ctx context.Context, itineraryID, experienceID, userID string) (*models.UpvoteResult, error)
}

type itineraryService struct {
	userRepo       repository.UserRepository
	bookRepo       repository.BookRepository
	pageRepo       repository.PageRepository
	itineraryRepo  repository.ItineraryRepository
	experienceRepo repository.ExperienceRepository
	uploader       *uploader
	maxImages      int
	log            *logrus.Entry
}

func NewItineraryService(rep *repository.Repository, storage storage.Storage, maxImages int, log *logrus.Logger) ItineraryService {
	entry := log.WithField("service", "itinerary")
	return &itineraryService{
		userRepo:       rep.User,
		bookRepo:       rep.Book,
		pageRepo:       rep.Page,
		itineraryRepo:  rep.Itinerary,
		experienceRepo: rep.Experience,
		uploader:       &uploader{storage: storage, log: entry},
		maxImages:      maxImages,
		log:            entry,
	}
}

func validateItinerary(in ItineraryInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperror.Validation("Title is required")
	}
	if !in.Category.Valid() {
		return apperror.Validation("Invalid category").WithDetails(map[string]any{"category": in.Category})
	}
	if in.Rating < 0 || in.Rating > 5 {
		return apperror.Validation("Rating must be between 0 and 5")
	}
	if in.Location.Latitude < -90 || in.Location.Latitude > 90 ||
		in.Location.Longitude < -180 || in.Location.Longitude > 180 {
		return apperror.Validation("Location is out of range")
	}
	return nil
}

func (s *itineraryService) Create(ctx context.Context, pageID, authorID string, in ItineraryInput) (*models.CreatedItinerary, error) {
	if err := requireIdentity(authorID); err != nil {
		return nil, err
	}

	if err := validateItinerary(in); err != nil {
		return nil, err
	}
	if err := validateUploads(in.Images, s.maxImages); err != nil {
		return nil, err
	}

	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByID(ctx, authorID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, page.BookID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(book.AddedByID, authorID, "You are not allowed to add itineraries to this page"); err != nil {
		return nil, err
	}

	urls, objects, err := s.uploader.uploadAll(ctx, "itineraries/"+pageID, in.Images)
	if err != nil {
		return nil, err
	}
	if urls == nil {
		urls = []string{}
	}

	itinerary := &models.Itinerary{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Caption:     in.Caption,
		Category:    in.Category,
		Images:      pq.StringArray(urls),
		Location:    in.Location,
		Rating:      in.Rating,
		AddedByID:   authorID,
		PageID:      &pageID,
	}

	var experience *models.Experience
	if comment := strings.TrimSpace(in.Experience); comment != "" {
		experience = &models.Experience{UserID: authorID, Comment: comment}
	}

	if err := s.itineraryRepo.Create(ctx, itinerary, experience); err != nil {
		s.uploader.discard(ctx, objects)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"itinerary_id": itinerary.ItineraryID,
		"page_id":      pageID,
		"user_id":      authorID,
	}).Info("itinerary created")

	return &models.CreatedItinerary{Itinerary: itinerary, Experience: experience}, nil
}

func (s *itineraryService) GetDetail(ctx context.Context, itineraryID string) (*models.ItineraryDetail, error) {
	itinerary, err := s.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	if err := s.itineraryRepo.IncrementViews(ctx, itineraryID); err != nil {
		s.log.WithError(err).WithField("itinerary_id", itineraryID).Warn("failed to count view")
	} else {
		itinerary.Views++
	}

	addedBy := ""
	author, err := s.userRepo.GetUserByID(ctx, itinerary.AddedByID)
	switch {
	case err == nil:
		addedBy = author.DisplayName()
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}

	experiences, err := s.experienceRepo.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	return buildDetail(itinerary, addedBy, experiences), nil
}

func buildDetail(itinerary *models.Itinerary, addedBy string, experiences []models.ExperienceWithAuthor) *models.ItineraryDetail {
	banner := ""
	highlights := []string{}
	if len(itinerary.Images) > 0 {
		banner = itinerary.Images[0]
		end := min(len(itinerary.Images), maxHighlights+1)
		highlights = append(highlights, itinerary.Images[1:end]...)
	}

	views := make([]models.ExperienceView, 0, len(experiences))
	for _, e := range experiences {
		upVotes := []string(e.UpVotes)
		if upVotes == nil {
			upVotes = []string{}
		}
		views = append(views, models.ExperienceView{
			ID:          e.ExperienceID,
			Experience:  e.Comment,
			UpVotes:     upVotes,
			UpvoteCount: len(upVotes),
			User: models.ExperienceAuthor{
				Name:   models.DisplayName(e.FirstName, e.LastName),
				Avatar: e.ProfileImage,
			},
		})
	}

	return &models.ItineraryDetail{
		ID:       itinerary.ItineraryID,
		PageID:   itinerary.PageID,
		Category: itinerary.Category,
		Location: itinerary.Location,
		Rating:   itinerary.Rating,
		Views:    itinerary.Views,
		Banner: models.ItineraryBanner{
			Image:         banner,
			Title:         itinerary.Title,
			AddedBy:       addedBy,
			LastUpdatedAt: itinerary.UpdatedAt.Format(detailDateLayout),
		},
		Caption:     itinerary.Caption,
		Highlights:  models.ItineraryHighlights{Images: highlights},
		Experiences: views,
	}
}

func (s *itineraryService) AddExperience(ctx context.Context, itineraryID, authorID, comment string) (*models.Experience, error) {
	if err := requireIdentity(authorID); err != nil {
		return nil, err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, apperror.Validation("Comment is required")
	}

	if _, err := s.itineraryRepo.GetByID(ctx, itineraryID); err != nil {
		return nil, err
	}

	experience := &models.Experience{
		ItineraryID: itineraryID,
		UserID:      authorID,
		Comment:     comment,
	}

	if err := s.experienceRepo.Create(ctx, experience); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"itinerary_id": itineraryID, "experience_id": experience.ExperienceID}).
		Info("experience added")
	return experience, nil
}

func (s *itineraryService) ToggleUpvote(ctx context.Context, itineraryID, experienceID, userID string) (*models.UpvoteResult, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	if experienceID == "" {
		return nil, apperror.Validation("experienceId is required")
	}

	experience, err := s.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if experience.ItineraryID != itineraryID {
		return nil, apperror.NotFound("Experience not found on this itinerary")
	}

	updated, added, err := s.experienceRepo.ToggleUpvote(ctx, experienceID, userID)
	if err != nil {
		return nil, err
	}

	result := &models.UpvoteResult{
		Experience:  updated,
		UpvoteCount: len(updated.UpVotes),
		Added:       added,
	}

	s.log.WithFields(logrus.Fields{"experience_id": experienceID, "user_id": userID, "action": result.Action()}).
		Debug("upvote toggled")
	return result, nil
}
