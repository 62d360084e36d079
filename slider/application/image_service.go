package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// Uploads are fitted inside this box; smaller images are left as they are.
const (
	maxImageWidth  = 1000
	maxImageHeight = 600

	placeholderWidth  = 500
	placeholderHeight = 300
)

// ImageService stores uploaded slider images and assigns slider thumbnails.
type ImageService struct {
	images  domain.ImageRepository
	sliders domain.SliderRepository
	now     func() time.Time

	placeholderOnce sync.Once
	placeholder     []byte
	placeholderErr  error
}

func NewImageService(images domain.ImageRepository, sliders domain.SliderRepository) *ImageService {
	return &ImageService{
		images:  images,
		sliders: sliders,
		now:     time.Now,
	}
}

// Upload decodes an image, fits it inside maxImageWidth x maxImageHeight and
// stores it re-encoded in the format named by filename's extension. The
// stored path is derived from the content hash, so uploading the same image
// twice yields the same path.
func (s *ImageService) Upload(ctx context.Context, principal domain.Principal, filename string, r io.Reader) (*domain.Image, error) {
	if principal.UserID == "" || !principal.Role.Valid() {
		return nil, fmt.Errorf("%w: uploads need a signed-in user", domain.ErrForbidden)
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, path.Ext(filename))
	}

	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", domain.ErrInvalidInput, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(src, maxImageWidth, maxImageHeight, imaging.Lanczos), format); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	hash := calculateHash(buf.Bytes())
	now := s.now().UTC()
	img := &domain.Image{
		Path:      "/images/" + hash[:16] + extensionFor(format),
		Hash:      hash,
		Content:   buf.Bytes(),
		UpdatedAt: now,
		CreatedAt: now,
	}
	if err := s.images.SaveImage(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	log.Info().Str("path", img.Path).Str("userID", principal.UserID).Msg("Stored image")
	return img, nil
}

// Open returns the on-disk location of a stored image.
func (s *ImageService) Open(ctx context.Context, file string) (string, error) {
	p := "/images/" + path.Base(file)
	if _, err := s.images.GetImage(ctx, p); err != nil {
		return "", err
	}
	return s.images.LocalPath(p), nil
}

// SetThumbnail designates a stored image as a slider's thumbnail. An empty
// imagePath clears it. The principal must be allowed to edit the slider.
func (s *ImageService) SetThumbnail(ctx context.Context, principal domain.Principal, sliderID, imagePath string) error {
	slider, err := s.sliders.GetSlider(ctx, sliderID)
	if err != nil {
		return err
	}
	if !principal.CanEdit(slider.AuthorID) {
		return fmt.Errorf("%w: user %s cannot edit slider %s", domain.ErrForbidden, principal.UserID, sliderID)
	}

	if imagePath != "" {
		if _, err := s.images.GetImage(ctx, imagePath); err != nil {
			return err
		}
	}

	return s.sliders.SetThumbnail(ctx, sliderID, imagePath)
}

// Delete removes a stored image. Only editors and administrators may delete,
// since an image can be shared by sliders of several authors. Sliders still
// using the image as their thumbnail fall back to their other images.
func (s *ImageService) Delete(ctx context.Context, principal domain.Principal, file string) error {
	if !principal.Role.EditsOthers() {
		return fmt.Errorf("%w: user %s cannot delete images", domain.ErrForbidden, principal.UserID)
	}

	p := "/images/" + path.Base(file)
	if _, err := s.images.GetImage(ctx, p); err != nil {
		return err
	}

	cleared, err := s.sliders.ClearThumbnails(ctx, p)
	if err != nil {
		return err
	}
	if err := s.images.DeleteImage(ctx, p); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	log.Info().Str("path", p).Str("userID", principal.UserID).Int64("clearedThumbnails", cleared).Msg("Deleted image")
	return nil
}

// Placeholder returns the JPEG shown for sliders without an image. It is
// generated on first use.
func (s *ImageService) Placeholder() ([]byte, error) {
	s.placeholderOnce.Do(func() {
		img := imaging.New(placeholderWidth, placeholderHeight, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
			s.placeholderErr = fmt.Errorf("failed to encode placeholder: %w", err)
			return
		}
		s.placeholder = buf.Bytes()
	})
	return s.placeholder, s.placeholderErr
}

func calculateHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func extensionFor(f imaging.Format) string {
	if f == imaging.JPEG {
		return ".jpg"
	}
	return "." + strings.ToLower(f.String())
}
