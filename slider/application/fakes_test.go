package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dfryer1193/goslider/slider/domain"
)

// memorySliders is an in-memory domain.SliderRepository.
type memorySliders struct {
	mu      sync.Mutex
	sliders map[string]*domain.Slider
	seq     int
	listErr error
	writes  int
}

func newMemorySliders() *memorySliders {
	return &memorySliders{sliders: make(map[string]*domain.Slider)}
}

// add stores a slider created seq steps after a fixed epoch.
func (m *memorySliders) add(s domain.Slider) *domain.Slider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if s.ID == "" {
		s.ID = fmt.Sprintf("slider-%03d", m.seq)
	}
	if s.AuthorID == "" {
		s.AuthorID = "author-1"
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	}
	m.sliders[s.ID] = &s
	return &s
}

func (m *memorySliders) CreateSlider(_ context.Context, s *domain.Slider) error {
	created := m.add(*s)
	*s = *created
	return nil
}

func (m *memorySliders) GetSlider(_ context.Context, id string) (*domain.Slider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sliders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	c := *s
	return &c, nil
}

func (m *memorySliders) UpdateFields(_ context.Context, id string, f domain.SliderFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sliders[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	m.writes++
	if f.Title != nil {
		s.Title = *f.Title
	}
	if f.Description != nil {
		s.Description = *f.Description
	}
	if f.ImageRef != nil {
		s.ImageRef = *f.ImageRef
	}
	if f.Visibility != nil {
		s.Visibility = *f.Visibility
	}
	return nil
}

func (m *memorySliders) SetThumbnail(_ context.Context, id, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sliders[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	s.ThumbnailRef = p
	return nil
}

func (m *memorySliders) ClearThumbnails(_ context.Context, p string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.sliders {
		if s.ThumbnailRef == p {
			s.ThumbnailRef = ""
			n++
		}
	}
	return n, nil
}

func (m *memorySliders) ListByVisibility(_ context.Context, v domain.Visibility) ([]*domain.Slider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Slider
	for _, s := range m.sliders {
		if s.Visibility == v {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memorySliders) DeleteSlider(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sliders[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSliderNotFound, id)
	}
	delete(m.sliders, id)
	return nil
}

// memoryImages is an in-memory domain.ImageRepository.
type memoryImages struct {
	images map[string]*domain.Image
}

func newMemoryImages() *memoryImages {
	return &memoryImages{images: make(map[string]*domain.Image)}
}

func (m *memoryImages) SaveImage(_ context.Context, img *domain.Image) error {
	c := *img
	m.images[img.Path] = &c
	return nil
}

func (m *memoryImages) GetImage(_ context.Context, p string) (*domain.Image, error) {
	img, ok := m.images[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, p)
	}
	return img, nil
}

func (m *memoryImages) LocalPath(p string) string {
	return "/var/lib/goslider" + p
}

func (m *memoryImages) DeleteImage(_ context.Context, p string) error {
	delete(m.images, p)
	return nil
}

// memoryPages is an in-memory domain.PageRepository.
type memoryPages struct {
	pages map[string]*domain.Page
}

func newMemoryPages() *memoryPages {
	return &memoryPages{pages: make(map[string]*domain.Page)}
}

func (m *memoryPages) UpsertPage(_ context.Context, p *domain.Page) error {
	c := *p
	m.pages[p.Slug] = &c
	return nil
}

func (m *memoryPages) GetPage(_ context.Context, slug string) (*domain.Page, error) {
	p, ok := m.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
	}
	return p, nil
}

// stubNonces accepts exactly one nonce for one (action, user, object).
type stubNonces struct {
	nonce, action, userID, object string
}

func (s stubNonces) VerifyNonce(nonce, action, userID, object string) bool {
	return nonce != "" && nonce == s.nonce && action == s.action && userID == s.userID && object == s.object
}

func (s stubNonces) IssueNonce(action, userID, object string) (string, error) {
	return "nonce:" + action + ":" + userID + ":" + object, nil
}

var errStore = errors.New("store unavailable")

func ptr[T any](v T) *T {
	return &v
}
