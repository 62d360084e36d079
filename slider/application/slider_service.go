package application

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/rs/zerolog/log"
)

// Form field names of the slider edit form.
const (
	FieldTitle       = "slider_title"
	FieldDescription = "slider_description"
	FieldImage       = "slider_image"
	FieldVisibility  = "slider_show_hide"
	FieldNonce       = "slider_nonce"

	// SaveAction is the action slider nonces are issued for.
	SaveAction = "save_slider"
)

// NonceVerifier checks a form nonce against the action, user and record it
// must have been issued for.
type NonceVerifier interface {
	VerifyNonce(nonce, action, userID, object string) bool
}

// SaveOutcome tells whether a save was written or why it was skipped.
type SaveOutcome int

const (
	SaveWritten SaveOutcome = iota
	SaveSkippedNonce
	SaveSkippedAutosave
	SaveSkippedForbidden
)

func (o SaveOutcome) String() string {
	switch o {
	case SaveWritten:
		return "written"
	case SaveSkippedNonce:
		return "invalid nonce"
	case SaveSkippedAutosave:
		return "autosave"
	case SaveSkippedForbidden:
		return "forbidden"
	}
	return fmt.Sprintf("SaveOutcome(%d)", int(o))
}

// SaveRequest is one submission of the slider edit form.
type SaveRequest struct {
	ID        string
	Principal domain.Principal
	Nonce     string
	Autosave  bool
	Fields    domain.SliderFields
}

// FieldsFromForm picks the submitted slider fields out of a form. Fields
// absent from the form stay nil and are not written.
func FieldsFromForm(form url.Values) domain.SliderFields {
	var f domain.SliderFields
	if form.Has(FieldTitle) {
		v := form.Get(FieldTitle)
		f.Title = &v
	}
	if form.Has(FieldDescription) {
		v := form.Get(FieldDescription)
		f.Description = &v
	}
	if form.Has(FieldImage) {
		v := form.Get(FieldImage)
		f.ImageRef = &v
	}
	if form.Has(FieldVisibility) {
		v := domain.Visibility(form.Get(FieldVisibility))
		f.Visibility = &v
	}
	return f
}

// SliderService reads and writes slider records on behalf of editors.
type SliderService struct {
	repo   domain.SliderRepository
	nonces NonceVerifier
}

func NewSliderService(repo domain.SliderRepository, nonces NonceVerifier) *SliderService {
	return &SliderService{
		repo:   repo,
		nonces: nonces,
	}
}

// Create adds an empty slider authored by the principal.
func (s *SliderService) Create(ctx context.Context, author domain.Principal) (string, error) {
	if author.UserID == "" {
		return "", fmt.Errorf("slider author cannot be empty")
	}
	slider := &domain.Slider{AuthorID: author.UserID}
	if err := s.repo.CreateSlider(ctx, slider); err != nil {
		return "", err
	}
	log.Info().Str("sliderID", slider.ID).Str("userID", author.UserID).Msg("Created slider")
	return slider.ID, nil
}

// Load returns the slider with its current field values. Fields that were
// never saved come back empty.
func (s *SliderService) Load(ctx context.Context, id string) (*domain.Slider, error) {
	return s.repo.GetSlider(ctx, id)
}

// AuthorOf returns the ID of the user that created the slider.
func (s *SliderService) AuthorOf(ctx context.Context, id string) (string, error) {
	slider, err := s.repo.GetSlider(ctx, id)
	if err != nil {
		return "", err
	}
	return slider.AuthorID, nil
}

// Delete removes a slider and its fields.
func (s *SliderService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSlider(ctx, id)
}

// Save writes the submitted fields as sanitized plain text. The write is
// skipped, without error, when the nonce does not verify, when the request
// is an autosave, or when the principal may not edit this slider.
func (s *SliderService) Save(ctx context.Context, req SaveRequest) (SaveOutcome, error) {
	if !s.nonces.VerifyNonce(req.Nonce, SaveAction, req.Principal.UserID, req.ID) {
		return s.skip(req, SaveSkippedNonce), nil
	}

	if req.Autosave {
		return s.skip(req, SaveSkippedAutosave), nil
	}

	slider, err := s.repo.GetSlider(ctx, req.ID)
	if err != nil {
		return 0, err
	}
	if !req.Principal.CanEdit(slider.AuthorID) {
		return s.skip(req, SaveSkippedForbidden), nil
	}

	fields := sanitizeFields(req.Fields)
	if fields.Empty() {
		return SaveWritten, nil
	}

	if err := s.repo.UpdateFields(ctx, req.ID, fields); err != nil {
		return 0, fmt.Errorf("failed to save slider %s: %w", req.ID, err)
	}
	return SaveWritten, nil
}

func (s *SliderService) skip(req SaveRequest, outcome SaveOutcome) SaveOutcome {
	log.Debug().
		Str("sliderID", req.ID).
		Str("userID", req.Principal.UserID).
		Stringer("reason", outcome).
		Msg("Skipped slider save")
	return outcome
}

func sanitizeFields(in domain.SliderFields) domain.SliderFields {
	var out domain.SliderFields
	if in.Title != nil {
		v := SanitizeText(*in.Title)
		out.Title = &v
	}
	if in.Description != nil {
		v := SanitizeTextarea(*in.Description)
		out.Description = &v
	}
	if in.ImageRef != nil {
		v := SanitizeText(*in.ImageRef)
		out.ImageRef = &v
	}
	if in.Visibility != nil {
		v := domain.Visibility(SanitizeText(string(*in.Visibility)))
		out.Visibility = &v
	}
	return out
}
