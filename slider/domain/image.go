package domain

import (
	"context"
	"time"
)

// Image is an uploaded asset that a slider can reference.
// Path is the public URL path the asset is served from, e.g. /images/abc.jpg.
type Image struct {
	Path      string
	Hash      string
	Content   []byte
	UpdatedAt time.Time
	CreatedAt time.Time
}

type ImageRepository interface {
	// SaveImage saves an image to both filesystem and database
	SaveImage(ctx context.Context, img *Image) error

	// GetImage retrieves an image record from the database
	GetImage(ctx context.Context, path string) (*Image, error)

	// LocalPath returns the on-disk location of a stored image
	LocalPath(path string) string

	// DeleteImage removes an image from both filesystem and database
	DeleteImage(ctx context.Context, path string) error
}
