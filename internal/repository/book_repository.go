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

const bookColumns = `book_id, title, description, tags, image_url, visibility, status, added_by_id, created_at, updated_at`

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books
		(book_id, title, description, tags, image_url, visibility, status, added_by_id, created_at, updated_at)
		VALUES
		(:book_id, :title, :description, :tags, :image_url, :visibility, :status, :added_by_id, :created_at, :updated_at)
	`

	if book.BookID == "" {
		book.BookID = uuid.New().String()
	}
	if book.Tags == nil {
		book.Tags = pq.StringArray{}
	}
	if book.Visibility == "" {
		book.Visibility = models.VisibilityPrivate
	}

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, bookID string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("Book not found")
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book, nil
}

func (r *bookRepository) ListByOwner(ctx context.Context, userID string) ([]models.BookSummary, error) {
	query := `
		SELECT book_id, title, image_url, visibility, status
		FROM books
		WHERE added_by_id = $1
		ORDER BY created_at DESC
	`

	books := []models.BookSummary{}
	if err := r.db.SelectContext(ctx, &books, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

func (r *bookRepository) ListFullByOwner(ctx context.Context, userID string) ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE added_by_id = $1 ORDER BY created_at DESC`

	books := []models.Book{}
	if err := r.db.SelectContext(ctx, &books, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

func (r *bookRepository) ListPublic(ctx context.Context) ([]models.PublicBook, error) {
	query := `
		SELECT b.book_id, b.title, b.image_url, u.first_name, u.last_name
		FROM books b
		JOIN users u ON u.user_id = b.added_by_id
		WHERE b.visibility = $1
		ORDER BY b.created_at DESC
	`

	books := []models.PublicBook{}
	if err := r.db.SelectContext(ctx, &books, query, models.VisibilityPublic); err != nil {
		return nil, fmt.Errorf("failed to list public books: %w", err)
	}

	for i := range books {
		books[i].AddedBy = models.DisplayName(books[i].FirstName, books[i].LastName)
	}

	return books, nil
}

// Update writes every mutable column. The owner never changes.
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books SET
			title = :title,
			description = :description,
			tags = :tags,
			image_url = :image_url,
			visibility = :visibility,
			status = :status,
			updated_at = :updated_at
		WHERE book_id = :book_id AND added_by_id = :added_by_id
	`

	book.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	return expectAffected(result, apperror.NotFound("Book not found"))
}

// DeleteCascade unlinks itineraries from the book's pages, deletes the pages and then the
// book, all in one transaction.
func (r *bookRepository) DeleteCascade(ctx context.Context, bookID string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE itineraries SET page_id = NULL, updated_at = NOW()
			WHERE page_id IN (SELECT page_id FROM pages WHERE book_id = $1)
		`, bookID)
		if err != nil {
			return fmt.Errorf("failed to detach itineraries: %w", err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM pages WHERE book_id = $1`, bookID)
		if err != nil {
			return fmt.Errorf("failed to delete pages: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE book_id = $1`, bookID)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}

		return expectAffected(result, apperror.NotFound("Book not found"))
	})
}
