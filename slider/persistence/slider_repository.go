package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/goslider/shared/db"
	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/oklog/ulid/v2"
)

var _ domain.SliderRepository = (*SQLiteSliderRepository)(nil)

// Keys of the slider fields in the slider_meta table.
const (
	metaTitle       = "slider_title"
	metaDescription = "slider_description"
	metaImage       = "slider_image"
	metaVisibility  = "slider_show_hide"
)

// SQLiteSliderRepository implements domain.SliderRepository on top of a
// sliders table and a generic slider_meta key/value table.
type SQLiteSliderRepository struct {
	db *sql.DB
}

// NewSliderRepository creates a new SQLiteSliderRepository from a standard sql.DB
func NewSliderRepository(sqlDB *sql.DB) *SQLiteSliderRepository {
	return &SQLiteSliderRepository{
		db: sqlDB,
	}
}

const insertSliderQuery = `
	INSERT INTO sliders (id, author_id, thumbnail_path, updated_at, created_at)
	VALUES (?, ?, ?, ?, ?)
`

// CreateSlider inserts a new slider. An empty ID is assigned a fresh ULID and
// a zero CreatedAt is set to the current time; both are written back to s.
func (r *SQLiteSliderRepository) CreateSlider(ctx context.Context, s *domain.Slider) error {
	if s == nil {
		return fmt.Errorf("slider cannot be nil")
	}
	if s.AuthorID == "" {
		return fmt.Errorf("slider author cannot be empty")
	}

	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		_, err := executor.ExecContext(txCtx, insertSliderQuery,
			s.ID,
			s.AuthorID,
			nullString(s.ThumbnailRef),
			s.UpdatedAt,
			s.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert slider: %w", err)
		}

		fields := domain.SliderFields{}
		if s.Title != "" {
			fields.Title = &s.Title
		}
		if s.Description != "" {
			fields.Description = &s.Description
		}
		if s.ImageRef != "" {
			fields.ImageRef = &s.ImageRef
		}
		if s.Visibility != domain.VisibilityUnset {
			fields.Visibility = &s.Visibility
		}
		return r.writeMeta(txCtx, executor, s.ID, fields)
	})
}

// selectSliderColumns pivots the meta rows of each slider into columns.
const selectSliderColumns = `
	SELECT s.id, s.author_id, s.thumbnail_path, s.updated_at, s.created_at,
		(SELECT meta_value FROM slider_meta WHERE slider_id = s.id AND meta_key = 'slider_title'),
		(SELECT meta_value FROM slider_meta WHERE slider_id = s.id AND meta_key = 'slider_description'),
		(SELECT meta_value FROM slider_meta WHERE slider_id = s.id AND meta_key = 'slider_image'),
		(SELECT meta_value FROM slider_meta WHERE slider_id = s.id AND meta_key = 'slider_show_hide')
	FROM sliders s
`

const getSliderQuery = selectSliderColumns + `
	WHERE s.id = ?
`

// GetSlider retrieves a single slider by ID
func (r *SQLiteSliderRepository) GetSlider(ctx context.Context, id string) (*domain.Slider, error) {
	if id == "" {
		return nil, fmt.Errorf("slider ID cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)
	var row sliderRow
	err := row.scan(executor.QueryRowContext(ctx, getSliderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slider: %w", err)
	}

	return row.toDomain(), nil
}

const listSlidersByVisibilityQuery = selectSliderColumns + `
	WHERE COALESCE((SELECT meta_value FROM slider_meta WHERE slider_id = s.id AND meta_key = 'slider_show_hide'), '') = ?
	ORDER BY s.created_at DESC, s.id DESC
`

// ListByVisibility returns all sliders with the given visibility, newest first.
// There is no limit on the number of results.
func (r *SQLiteSliderRepository) ListByVisibility(ctx context.Context, v domain.Visibility) ([]*domain.Slider, error) {
	executor := db.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, listSlidersByVisibilityQuery, string(v))
	if err != nil {
		return nil, fmt.Errorf("failed to list sliders: %w", err)
	}
	defer rows.Close()

	sliders := make([]*domain.Slider, 0)
	for rows.Next() {
		var row sliderRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("failed to scan slider row: %w", err)
		}
		sliders = append(sliders, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slider rows: %w", err)
	}

	return sliders, nil
}

const touchSliderQuery = `
	UPDATE sliders SET updated_at = ? WHERE id = ?
`

const upsertMetaQuery = `
	INSERT INTO slider_meta (slider_id, meta_key, meta_value)
	VALUES (?, ?, ?)
	ON CONFLICT(slider_id, meta_key) DO UPDATE SET
		meta_value = excluded.meta_value
`

// UpdateFields writes the submitted fields of a slider. Fields left nil keep
// their stored value.
func (r *SQLiteSliderRepository) UpdateFields(ctx context.Context, id string, fields domain.SliderFields) error {
	if id == "" {
		return fmt.Errorf("slider ID cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		if err := touch(txCtx, executor, id); err != nil {
			return err
		}
		return r.writeMeta(txCtx, executor, id, fields)
	})
}

type metaEntry struct {
	key   string
	value *string
}

func (r *SQLiteSliderRepository) writeMeta(ctx context.Context, executor db.Executor, id string, fields domain.SliderFields) error {
	entries := []metaEntry{
		{metaTitle, fields.Title},
		{metaDescription, fields.Description},
		{metaImage, fields.ImageRef},
	}
	if fields.Visibility != nil {
		v := string(*fields.Visibility)
		entries = append(entries, metaEntry{metaVisibility, &v})
	}

	for _, e := range entries {
		if e.value == nil {
			continue
		}
		if _, err := executor.ExecContext(ctx, upsertMetaQuery, id, e.key, *e.value); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.key, err)
		}
	}
	return nil
}

const setThumbnailQuery = `
	UPDATE sliders SET thumbnail_path = ?, updated_at = ? WHERE id = ?
`

// SetThumbnail designates the slider's thumbnail. An empty path clears it.
func (r *SQLiteSliderRepository) SetThumbnail(ctx context.Context, id string, path string) error {
	if id == "" {
		return fmt.Errorf("slider ID cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, setThumbnailQuery, nullString(path), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set thumbnail: %w", err)
	}
	return requireAffected(res, id)
}

const clearThumbnailsQuery = `
	UPDATE sliders SET thumbnail_path = NULL, updated_at = ? WHERE thumbnail_path = ?
`

func (r *SQLiteSliderRepository) ClearThumbnails(ctx context.Context, path string) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("thumbnail path cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, clearThumbnailsQuery, time.Now().UTC(), path)
	if err != nil {
		return 0, fmt.Errorf("failed to clear thumbnails: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

const deleteSliderQuery = `
	DELETE FROM sliders WHERE id = ?
`

const deleteSliderMetaQuery = `
	DELETE FROM slider_meta WHERE slider_id = ?
`

// DeleteSlider removes a slider and all of its meta rows
func (r *SQLiteSliderRepository) DeleteSlider(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("slider ID cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		if _, err := executor.ExecContext(txCtx, deleteSliderMetaQuery, id); err != nil {
			return fmt.Errorf("failed to delete slider meta: %w", err)
		}

		res, err := executor.ExecContext(txCtx, deleteSliderQuery, id)
		if err != nil {
			return fmt.Errorf("failed to delete slider: %w", err)
		}
		return requireAffected(res, id)
	})
}

func touch(ctx context.Context, executor db.Executor, id string) error {
	res, err := executor.ExecContext(ctx, touchSliderQuery, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update slider: %w", err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// sliderRow is a private struct used to scan the pivoted slider query
type sliderRow struct {
	ID          string
	AuthorID    string
	Thumbnail   sql.NullString
	UpdatedAt   sql.NullTime
	CreatedAt   sql.NullTime
	Title       sql.NullString
	Description sql.NullString
	Image       sql.NullString
	Visibility  sql.NullString
}

func (sr *sliderRow) scan(s rowScanner) error {
	return s.Scan(
		&sr.ID,
		&sr.AuthorID,
		&sr.Thumbnail,
		&sr.UpdatedAt,
		&sr.CreatedAt,
		&sr.Title,
		&sr.Description,
		&sr.Image,
		&sr.Visibility,
	)
}

// toDomain converts a sliderRow to a domain.Slider; missing meta become empty values.
func (sr *sliderRow) toDomain() *domain.Slider {
	s := &domain.Slider{
		ID:           sr.ID,
		AuthorID:     sr.AuthorID,
		ThumbnailRef: sr.Thumbnail.String,
		Title:        sr.Title.String,
		Description:  sr.Description.String,
		ImageRef:     sr.Image.String,
		Visibility:   domain.Visibility(sr.Visibility.String),
	}

	if sr.UpdatedAt.Valid {
		s.UpdatedAt = sr.UpdatedAt.Time
	}
	if sr.CreatedAt.Valid {
		s.CreatedAt = sr.CreatedAt.Time
	}

	return s
}
