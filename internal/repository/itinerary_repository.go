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

	"travelbook/internal/apperror"
	"travelbook/internal/database"
	"travelbook/internal/models"
)

const itineraryColumns = `itinerary_id, title, description, caption, category, images, location, rating, views,
	added_by_id, page_id, created_at, updated_at`

type itineraryRepository struct {
	db *sqlx.DB
}

func NewItineraryRepository(db *sqlx.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// Create stores the itinerary and, when experience is not nil, its first experience in the
// same transaction.
func (r *itineraryRepository) Create(ctx context.Context, itinerary *models.Itinerary, experience *models.Experience) error {
	query := `
		INSERT INTO itineraries
		(itinerary_id, title, description, caption, category, images, location, rating, views,
		 added_by_id, page_id, created_at, updated_at)
		VALUES
		(:itinerary_id, :title, :description, :caption, :category, :images, :location, :rating, :views,
		 :added_by_id, :page_id, :created_at, :updated_at)
	`

	if itinerary.ItineraryID == "" {
		itinerary.ItineraryID = uuid.New().String()
	}
	if itinerary.Images == nil {
		itinerary.Images = pq.StringArray{}
	}

	now := time.Now()
	itinerary.CreatedAt = now
	itinerary.UpdatedAt = now

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := sqlx.NamedExecContext(ctx, tx, query, itinerary); err != nil {
			return fmt.Errorf("failed to create itinerary: %w", err)
		}

		if experience == nil {
			return nil
		}

		experience.ItineraryID = itinerary.ItineraryID
		return insertExperience(ctx, tx, experience)
	})
}

func (r *itineraryRepository) GetByID(ctx context.Context, itineraryID string) (*models.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE itinerary_id = $1`

	var itinerary models.Itinerary
	err := r.db.GetContext(ctx, &itinerary, query, itineraryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("Itinerary not found")
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	return &itinerary, nil
}

func (r *itineraryRepository) ListRefsByPageIDs(ctx context.Context, pageIDs []string) ([]models.ItineraryRef, error) {
	refs := []models.ItineraryRef{}
	if len(pageIDs) == 0 {
		return refs, nil
	}

	query := `
		SELECT itinerary_id, page_id, title, category, location
		FROM itineraries
		WHERE page_id = ANY($1)
		ORDER BY created_at
	`

	if err := r.db.SelectContext(ctx, &refs, query, pq.Array(pageIDs)); err != nil {
		return nil, fmt.Errorf("failed to list itinerary refs: %w", err)
	}

	return refs, nil
}

func (r *itineraryRepository) ListDiscovery(ctx context.Context) ([]models.DiscoveryItinerary, error) {
	query := `
		SELECT i.itinerary_id, i.title, i.category, i.location, i.images, i.rating, i.views,
			u.first_name, u.last_name
		FROM itineraries i
		JOIN users u ON u.user_id = i.added_by_id
		ORDER BY i.created_at DESC
	`

	itineraries := []models.DiscoveryItinerary{}
	if err := r.db.SelectContext(ctx, &itineraries, query); err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}

	for i := range itineraries {
		if len(itineraries[i].Images) > 0 {
			itineraries[i].Image = itineraries[i].Images[0]
		}
		itineraries[i].AddedBy = models.DisplayName(itineraries[i].FirstName, itineraries[i].LastName)
	}

	return itineraries, nil
}

// AttachToPage links the itinerary to pageID, provided it is still linked to fromPageID
// (nil meaning unlinked). Linking it again to the same page is a no-op.
func (r *itineraryRepository) AttachToPage(ctx context.Context, itineraryID, pageID string, fromPageID *string) error {
	query := `
		UPDATE itineraries SET page_id = $2, updated_at = NOW()
		WHERE itinerary_id = $1 AND page_id IS NOT DISTINCT FROM $3
	`

	result, err := r.db.ExecContext(ctx, query, itineraryID, pageID, fromPageID)
	if err != nil {
		if isInvalidID(err) {
			return apperror.NotFound("Itinerary not found")
		}
		return fmt.Errorf("failed to attach itinerary: %w", err)
	}

	return expectAffected(result, apperror.Conflict("Itinerary was linked to another page meanwhile, try again"))
}

func (r *itineraryRepository) DetachFromPage(ctx context.Context, itineraryID, pageID string) error {
	query := `UPDATE itineraries SET page_id = NULL, updated_at = NOW() WHERE itinerary_id = $1 AND page_id = $2`

	linkNotFound := apperror.NotFound("Itinerary not found on this page").
		WithDetails(map[string]any{"resource": "itinerary_link"})

	result, err := r.db.ExecContext(ctx, query, itineraryID, pageID)
	if err != nil {
		if isInvalidID(err) {
			return linkNotFound
		}
		return fmt.Errorf("failed to detach itinerary: %w", err)
	}

	return expectAffected(result, linkNotFound)
}

func (r *itineraryRepository) IncrementViews(ctx context.Context, itineraryID string) error {
	query := `UPDATE itineraries SET views = views + 1 WHERE itinerary_id = $1`

	_, err := r.db.ExecContext(ctx, query, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}
