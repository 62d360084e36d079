package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/slider/domain"
)

const (
	ContentTypeSlider = "slider"
	ShortcodeSliders  = "slider_posts"
)

// sliderStore adapts SliderService to the host's generic content screens.
type sliderStore struct {
	service *SliderService
}

func (s sliderStore) Create(ctx context.Context, author domain.Principal) (string, error) {
	return s.service.Create(ctx, author)
}

func (s sliderStore) AuthorOf(ctx context.Context, id string) (string, error) {
	return s.service.AuthorOf(ctx, id)
}

func (s sliderStore) Delete(ctx context.Context, id string) error {
	return s.service.Delete(ctx, id)
}

// Register installs the slider content type, its edit meta box and the
// [slider_posts] shortcode on the host.
func Register(host platform.Registrar, service *SliderService, metaBox *MetaBox, listing *ListingRenderer) error {
	err := host.RegisterContentType(platform.ContentType{
		Name: ContentTypeSlider,
		Labels: platform.Labels{
			AddNew: "Add New Slider",
			Edit:   "Edit Slider",
		},
		Store: sliderStore{service: service},
	})
	if err != nil {
		return fmt.Errorf("failed to register slider content type: %w", err)
	}

	err = host.RegisterMetaBox(platform.MetaBox{
		ID:          "slider_meta_box",
		Title:       "Slider Fields",
		ContentType: ContentTypeSlider,
		Render:      metaBox.Render,
		Save:        metaBox.Save,
	})
	if err != nil {
		return fmt.Errorf("failed to register slider meta box: %w", err)
	}

	err = host.RegisterShortcode(ShortcodeSliders, func(ctx context.Context, _ map[string]string) (string, error) {
		return listing.RenderVisible(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register slider shortcode: %w", err)
	}

	return nil
}
