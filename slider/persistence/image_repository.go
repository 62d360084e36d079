package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dfryer1193/goslider/shared/db"
	"github.com/dfryer1193/goslider/slider/domain"
)

var _ domain.ImageRepository = (*SQLiteImageRepository)(nil)

// SQLiteImageRepository keeps image records in SQLite and image bytes in dir.
type SQLiteImageRepository struct {
	db  *sql.DB
	dir string
}

// NewImageRepository creates a new SQLiteImageRepository storing files under dir
func NewImageRepository(sqlDB *sql.DB, dir string) *SQLiteImageRepository {
	return &SQLiteImageRepository{
		db:  sqlDB,
		dir: dir,
	}
}

// LocalPath maps a public image path onto the storage directory. Only the
// base name is used so a crafted path cannot escape the directory.
func (r *SQLiteImageRepository) LocalPath(p string) string {
	return filepath.Join(r.dir, path.Base(p))
}

const upsertImageQuery = `
	INSERT INTO images (path, hash, updated_at, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		hash = excluded.hash,
		updated_at = excluded.updated_at,
		created_at = COALESCE(images.created_at, excluded.created_at)
`

// SaveImage saves an image to both filesystem and database within a transaction
func (r *SQLiteImageRepository) SaveImage(ctx context.Context, img *domain.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	if img.Path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		var updatedAt, createdAt any

		if !img.UpdatedAt.IsZero() {
			updatedAt = img.UpdatedAt
		}

		if !img.CreatedAt.IsZero() {
			createdAt = img.CreatedAt
		}

		executor := db.GetExecutor(txCtx, r.db)
		_, err := executor.ExecContext(txCtx, upsertImageQuery,
			img.Path,
			img.Hash,
			updatedAt,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert image record: %w", err)
		}

		// The file is written last so a failure rolls back the record.
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return fmt.Errorf("failed to create image directory: %w", err)
		}

		if err := os.WriteFile(r.LocalPath(img.Path), img.Content, 0644); err != nil {
			return fmt.Errorf("failed to write image file: %w", err)
		}

		return nil
	})
}

const getImageQuery = `
	SELECT path, hash, updated_at, created_at
	FROM images
	WHERE path = ?
`

// GetImage retrieves a single image record by path; Content is not loaded.
func (r *SQLiteImageRepository) GetImage(ctx context.Context, p string) (*domain.Image, error) {
	if p == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	var row imageRow
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getImageQuery, p).Scan(
		&row.Path,
		&row.Hash,
		&row.UpdatedAt,
		&row.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, p)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return row.toDomain(), nil
}

const deleteImageQuery = `
	DELETE FROM images WHERE path = ?
`

// DeleteImage removes an image from both filesystem and database within a transaction
func (r *SQLiteImageRepository) DeleteImage(ctx context.Context, p string) error {
	if p == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		if _, err := executor.ExecContext(txCtx, deleteImageQuery, p); err != nil {
			return fmt.Errorf("failed to delete image record: %w", err)
		}

		if err := os.Remove(r.LocalPath(p)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove image file: %w", err)
		}

		return nil
	})
}

// imageRow is a private struct used to scan database rows
type imageRow struct {
	Path      string
	Hash      string
	UpdatedAt sql.NullTime
	CreatedAt sql.NullTime
}

// toDomain converts an imageRow to a domain.Image, handling nullable times
func (ir *imageRow) toDomain() *domain.Image {
	img := &domain.Image{
		Path: ir.Path,
		Hash: ir.Hash,
	}

	if ir.UpdatedAt.Valid {
		img.UpdatedAt = ir.UpdatedAt.Time
	}
	if ir.CreatedAt.Valid {
		img.CreatedAt = ir.CreatedAt.Time
	}

	return img
}
