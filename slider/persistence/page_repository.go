package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dfryer1193/goslider/shared/db"
	"github.com/dfryer1193/goslider/slider/domain"
)

var _ domain.PageRepository = (*SQLitePageRepository)(nil)

// SQLitePageRepository implements domain.PageRepository using SQLite
type SQLitePageRepository struct {
	db *sql.DB
}

func NewPageRepository(sqlDB *sql.DB) *SQLitePageRepository {
	return &SQLitePageRepository{
		db: sqlDB,
	}
}

const upsertPageQuery = `
	INSERT INTO pages (slug, title, body, updated_at, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(slug) DO UPDATE SET
		title = excluded.title,
		body = excluded.body,
		updated_at = excluded.updated_at,
		created_at = COALESCE(pages.created_at, excluded.created_at)
`

// UpsertPage inserts or replaces a page. CreatedAt of an existing page is kept.
func (r *SQLitePageRepository) UpsertPage(ctx context.Context, p *domain.Page) error {
	if p == nil {
		return fmt.Errorf("page cannot be nil")
	}
	if p.Slug == "" {
		return fmt.Errorf("page slug cannot be empty")
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("page created time cannot be empty")
	}

	var updatedAt any
	if !p.UpdatedAt.IsZero() {
		updatedAt = p.UpdatedAt
	}

	_, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, upsertPageQuery,
		p.Slug,
		p.Title,
		p.Body,
		updatedAt,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}
	return nil
}

const getPageQuery = `
	SELECT slug, title, body, updated_at, created_at
	FROM pages
	WHERE slug = ?
`

// GetPage retrieves a page by slug
func (r *SQLitePageRepository) GetPage(ctx context.Context, slug string) (*domain.Page, error) {
	if slug == "" {
		return nil, fmt.Errorf("page slug cannot be empty")
	}

	var (
		p                    domain.Page
		updatedAt, createdAt sql.NullTime
	)
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getPageQuery, slug).Scan(
		&p.Slug,
		&p.Title,
		&p.Body,
		&updatedAt,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	return &p, nil
}
