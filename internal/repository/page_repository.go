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

const pageColumns = `page_id, book_id, title, description, tips, images, status, location, created_at, updated_at`

type pageRepository struct {
	db *sqlx.DB
}

func NewPageRepository(db *sqlx.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	query := `
		INSERT INTO pages
		(page_id, book_id, title, description, tips, images, status, location, created_at, updated_at)
		VALUES
		(:page_id, :book_id, :title, :description, :tips, :images, :status, :location, :created_at, :updated_at)
	`

	page.PageID = uuid.New().String()
	if page.Images == nil {
		page.Images = pq.StringArray{}
	}
	if page.Status == "" {
		page.Status = models.StatusPlanning
	}

	now := time.Now()
	page.CreatedAt = now
	page.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, page)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	return nil
}

func (r *pageRepository) GetByID(ctx context.Context, pageID string) (*models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE page_id = $1`

	var page models.Page
	err := r.db.GetContext(ctx, &page, query, pageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("Page not found")
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return &page, nil
}

func (r *pageRepository) ListByBookIDs(ctx context.Context, bookIDs []string) ([]models.Page, error) {
	pages := []models.Page{}
	if len(bookIDs) == 0 {
		return pages, nil
	}

	query := `SELECT ` + pageColumns + ` FROM pages WHERE book_id = ANY($1) ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &pages, query, pq.Array(bookIDs)); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	return pages, nil
}

// UpdateExploration stores the explored state of a page: its text, images, status and location.
func (r *pageRepository) UpdateExploration(ctx context.Context, page *models.Page) error {
	query := `
		UPDATE pages SET
			title = :title,
			description = :description,
			tips = :tips,
			images = :images,
			status = :status,
			location = :location,
			updated_at = :updated_at
		WHERE page_id = :page_id AND book_id = :book_id
	`

	page.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, page)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	return expectAffected(result, apperror.NotFound("Page not found"))
}

// DeleteDetaching unlinks the page's itineraries and removes the page in one transaction.
// The itineraries themselves survive.
func (r *pageRepository) DeleteDetaching(ctx context.Context, bookID, pageID string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE itineraries SET page_id = NULL, updated_at = NOW() WHERE page_id = $1`, pageID)
		if err != nil {
			if isInvalidID(err) {
				return apperror.NotFound("Page not found")
			}
			return fmt.Errorf("failed to detach itineraries: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE page_id = $1 AND book_id = $2`, pageID, bookID)
		if err != nil {
			return fmt.Errorf("failed to delete page: %w", err)
		}

		return expectAffected(result, apperror.NotFound("Page not found"))
	})
}
