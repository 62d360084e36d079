// Package platform is the host side of content plugins: it holds the content
// types, meta boxes and shortcodes that plugins register at startup, and the
// HTTP layer dispatches admin screens and page rendering through it.
package platform

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/dfryer1193/goslider/slider/domain"
)

// Labels are the strings the admin screens show for a content type.
type Labels struct {
	AddNew string
	Edit   string
}

// ContentStore is the storage a content type exposes to the host's generic
// create and delete screens.
type ContentStore interface {
	Create(ctx context.Context, author domain.Principal) (string, error)
	AuthorOf(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

type ContentType struct {
	Name   string
	Labels Labels
	Store  ContentStore
}

// EditContext identifies the record an edit screen is rendered for.
type EditContext struct {
	ID        string
	Principal domain.Principal
}

// SaveContext carries one submission of an edit screen.
type SaveContext struct {
	ID        string
	Principal domain.Principal
	Form      url.Values
	Autosave  bool
}

type MetaBox struct {
	ID          string
	Title       string
	ContentType string
	Render      func(ctx context.Context, w io.Writer, ec EditContext) error
	Save        func(ctx context.Context, sc SaveContext) error
}

// Registrar is what plugins see of the host at startup.
type Registrar interface {
	RegisterContentType(ct ContentType) error
	RegisterMetaBox(mb MetaBox) error
	RegisterShortcode(tag string, fn ShortcodeFunc) error
}

// Registry is the in-process Registrar.
type Registry struct {
	mu         sync.RWMutex
	types      map[string]ContentType
	metaBoxes  map[string][]MetaBox
	shortcodes map[string]ShortcodeFunc
}

var _ Registrar = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[string]ContentType),
		metaBoxes:  make(map[string][]MetaBox),
		shortcodes: make(map[string]ShortcodeFunc),
	}
}

func (r *Registry) RegisterContentType(ct ContentType) error {
	if ct.Name == "" {
		return fmt.Errorf("content type name cannot be empty")
	}
	if ct.Store == nil {
		return fmt.Errorf("content type %s has no store", ct.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[ct.Name]; exists {
		return fmt.Errorf("content type %s already registered", ct.Name)
	}
	r.types[ct.Name] = ct
	return nil
}

func (r *Registry) RegisterMetaBox(mb MetaBox) error {
	if mb.ID == "" || mb.Render == nil || mb.Save == nil {
		return fmt.Errorf("meta box needs an id, a render and a save hook")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[mb.ContentType]; !ok {
		return fmt.Errorf("meta box %s: unknown content type %q", mb.ID, mb.ContentType)
	}
	for _, existing := range r.metaBoxes[mb.ContentType] {
		if existing.ID == mb.ID {
			return fmt.Errorf("meta box %s already registered", mb.ID)
		}
	}
	r.metaBoxes[mb.ContentType] = append(r.metaBoxes[mb.ContentType], mb)
	return nil
}

func (r *Registry) RegisterShortcode(tag string, fn ShortcodeFunc) error {
	if !validTag(tag) {
		return fmt.Errorf("invalid shortcode tag %q", tag)
	}
	if fn == nil {
		return fmt.Errorf("shortcode %s has no handler", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.shortcodes[tag]; exists {
		return fmt.Errorf("shortcode %s already registered", tag)
	}
	r.shortcodes[tag] = fn
	return nil
}

// ContentType looks up a registered content type by name.
func (r *Registry) ContentType(name string) (ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.types[name]
	return ct, ok
}

// MetaBoxes returns the meta boxes of a content type in registration order.
func (r *Registry) MetaBoxes(contentType string) []MetaBox {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]MetaBox(nil), r.metaBoxes[contentType]...)
}

func (r *Registry) shortcode(tag string) (ShortcodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.shortcodes[tag]
	return fn, ok
}
