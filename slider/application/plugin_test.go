package application

import (
	"context"
	"strings"
	"testing"

	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/slider/domain"
)

func registerSliders(t *testing.T, repo *memorySliders) *platform.Registry {
	t.Helper()
	nonces := stubNonces{}
	service := NewSliderService(repo, nonces)
	registry := platform.NewRegistry()
	err := Register(registry, service, NewMetaBox(service, nonces), NewListingRenderer(repo, testSiteURL))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return registry
}

func TestRegister(t *testing.T) {
	repo := newMemorySliders()
	registry := registerSliders(t, repo)

	ct, ok := registry.ContentType(ContentTypeSlider)
	if !ok {
		t.Fatal("slider content type not registered")
	}
	if ct.Labels.Edit != "Edit Slider" || ct.Labels.AddNew != "Add New Slider" {
		t.Errorf("unexpected content type %+v", ct)
	}

	boxes := registry.MetaBoxes(ContentTypeSlider)
	if len(boxes) != 1 || boxes[0].Title != "Slider Fields" {
		t.Errorf("MetaBoxes() = %+v, want the slider fields box", boxes)
	}

	id, err := ct.Store.Create(context.Background(), owner)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if author, _ := ct.Store.AuthorOf(context.Background(), id); author != owner.UserID {
		t.Errorf("AuthorOf() = %q, want %q", author, owner.UserID)
	}
	if err := ct.Store.Delete(context.Background(), id); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestRegisterTwice(t *testing.T) {
	repo := newMemorySliders()
	registry := registerSliders(t, repo)
	service := NewSliderService(repo, stubNonces{})

	if err := Register(registry, service, NewMetaBox(service, stubNonces{}), NewListingRenderer(repo, testSiteURL)); err == nil {
		t.Error("registering the slider plugin twice should fail")
	}
}

func TestSliderShortcode(t *testing.T) {
	repo := newMemorySliders()
	registry := registerSliders(t, repo)

	out, err := registry.Expand(context.Background(), "<h1>Home</h1>\n<p>[slider_posts]</p>\n")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if out != "<h1>Home</h1>\n\n" {
		t.Errorf("Expand() with no visible sliders = %q", out)
	}

	repo.add(domain.Slider{Title: "Sale", Visibility: domain.VisibilityShow})
	out, err = registry.Expand(context.Background(), "<p>[slider_posts]</p>")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if !strings.HasPrefix(out, `<div class="slider-posts">`) || !strings.Contains(out, "Sale") {
		t.Errorf("Expand() = %q, want the listing", out)
	}
}
