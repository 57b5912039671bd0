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
	"travelbook/internal/models"
)

const experienceColumns = `experience_id, itinerary_id, user_id, comment, up_votes, created_at`

type experienceRepository struct {
	db *sqlx.DB
}

func NewExperienceRepository(db *sqlx.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

// insertExperience is shared by itinerary creation, which runs it inside its transaction.
func insertExperience(ctx context.Context, exec sqlx.ExtContext, experience *models.Experience) error {
	query := `
		INSERT INTO experiences (experience_id, itinerary_id, user_id, comment, up_votes, created_at)
		VALUES (:experience_id, :itinerary_id, :user_id, :comment, :up_votes, :created_at)
	`

	experience.ExperienceID = uuid.New().String()
	experience.UpVotes = pq.StringArray{}
	experience.CreatedAt = time.Now()

	if _, err := sqlx.NamedExecContext(ctx, exec, query, experience); err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}

	return nil
}

func (r *experienceRepository) Create(ctx context.Context, experience *models.Experience) error {
	return insertExperience(ctx, r.db, experience)
}

func (r *experienceRepository) GetByID(ctx context.Context, experienceID string) (*models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE experience_id = $1`

	var experience models.Experience
	err := r.db.GetContext(ctx, &experience, query, experienceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("Experience not found")
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return &experience, nil
}

func (r *experienceRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]models.ExperienceWithAuthor, error) {
	query := `
		SELECT e.experience_id, e.itinerary_id, e.user_id, e.comment, e.up_votes, e.created_at,
			u.first_name, u.last_name, u.profile_image
		FROM experiences e
		JOIN users u ON u.user_id = e.user_id
		WHERE e.itinerary_id = $1
		ORDER BY e.created_at
	`

	experiences := []models.ExperienceWithAuthor{}
	if err := r.db.SelectContext(ctx, &experiences, query, itineraryID); err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}

	return experiences, nil
}

// ToggleUpvote adds userID to the experience's upvotes, or removes it when already present.
// The second return value reports whether the vote was added.
func (r *experienceRepository) ToggleUpvote(ctx context.Context, experienceID, userID string) (*models.Experience, bool, error) {
	query := `
		UPDATE experiences SET up_votes = CASE
			WHEN $2::text = ANY(up_votes) THEN array_remove(up_votes, $2::text)
			ELSE array_append(up_votes, $2::text)
		END
		WHERE experience_id = $1
		RETURNING ` + experienceColumns

	var experience models.Experience
	err := r.db.GetContext(ctx, &experience, query, experienceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, false, apperror.NotFound("Experience not found")
		}
		return nil, false, fmt.Errorf("failed to toggle upvote: %w", err)
	}

	added := false
	for _, id := range experience.UpVotes {
		if id == userID {
			added = true
			break
		}
	}

	return &experience, added, nil
}
