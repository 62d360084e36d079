package domain

import (
	"context"
	"time"
)

// Visibility controls whether a slider appears in the public listing.
// Values other than VisibilityShow, including the unset zero value, keep a
// slider out of the listing.
type Visibility string

const (
	VisibilityUnset Visibility = ""
	VisibilityShow  Visibility = "show"
	VisibilityHide  Visibility = "hide"
)

// Shown reports whether the slider is publicly listed.
func (v Visibility) Shown() bool {
	return v == VisibilityShow
}

// Slider is a single carousel item.
// Its editable fields live in the generic slider_meta key/value table and are
// mapped onto this typed record at the repository boundary.
type Slider struct {
	ID           string
	AuthorID     string
	Title        string
	Description  string
	ImageRef     string
	ThumbnailRef string
	Visibility   Visibility
	UpdatedAt    time.Time
	CreatedAt    time.Time
}

// SliderFields is a partial update of the editable fields.
// A nil field was not submitted and is left untouched.
type SliderFields struct {
	Title       *string
	Description *string
	ImageRef    *string
	Visibility  *Visibility
}

// Empty reports whether no field was submitted.
func (f SliderFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.ImageRef == nil && f.Visibility == nil
}

type SliderRepository interface {
	CreateSlider(ctx context.Context, s *Slider) error
	GetSlider(ctx context.Context, id string) (*Slider, error)
	UpdateFields(ctx context.Context, id string, fields SliderFields) error
	SetThumbnail(ctx context.Context, id string, path string) error
	// ClearThumbnails unsets the thumbnail of every slider pointing at path
	// and reports how many were changed.
	ClearThumbnails(ctx context.Context, path string) (int64, error)

	// ListByVisibility returns every slider with the given visibility,
	// newest first (created_at DESC, id DESC).
	ListByVisibility(ctx context.Context, v Visibility) ([]*Slider, error)
	DeleteSlider(ctx context.Context, id string) error
}
