package application

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/dfryer1193/goslider/slider/domain"
)

// Carousel assets. The slick version is pinned; jQuery is loaded because
// slick is a jQuery plugin.
const (
	SlickStylesheetURL = "https://cdnjs.cloudflare.com/ajax/libs/slick-carousel/1.8.1/slick.min.css"
	SlickScriptURL     = "https://cdnjs.cloudflare.com/ajax/libs/slick-carousel/1.8.1/slick.min.js"
	JQueryScriptURL    = "https://cdnjs.cloudflare.com/ajax/libs/jquery/3.7.1/jquery.min.js"

	// PlaceholderPath is where the placeholder slider image is served.
	PlaceholderPath = "/assets/slider-placeholder.jpg"
)

var listingTmpl = template.Must(template.New("listing").Parse(`<div class="slider-posts">
{{- range .}}
<div class="slider-post">
<img src="{{.Src}}" alt="{{.Alt}}" height="300" width="500">
<div class="metadata">
<table border="1">
<tr><th>Title:</th><td>{{.Title}}</td></tr>
<tr><th>Description:</th><td>{{.Description}}</td></tr>
</table>
</div>
</div>
{{- end}}
</div>
<link rel="stylesheet" href="` + SlickStylesheetURL + `">
<script src="` + JQueryScriptURL + `"></script>
<script src="` + SlickScriptURL + `"></script>
<script>
jQuery(function($) {
	$('.slider-posts').slick({
		slidesToShow: 1,
		slidesToScroll: 1,
		autoplay: false,
		autoplaySpeed: 2000
	});
});
</script>
`))

// slideData holds the data for one slide of the listing template.
type slideData struct {
	Src         string
	Alt         string
	Title       string
	Description string
}

// SliderLister is the query the listing needs from the store.
type SliderLister interface {
	ListByVisibility(ctx context.Context, v domain.Visibility) ([]*domain.Slider, error)
}

// ListingRenderer builds the public carousel markup.
type ListingRenderer struct {
	sliders SliderLister
	siteURL string
}

// NewListingRenderer creates a renderer. Site-relative image paths are
// prefixed with siteURL so the markup works when embedded on another origin.
func NewListingRenderer(sliders SliderLister, siteURL string) *ListingRenderer {
	return &ListingRenderer{
		sliders: sliders,
		siteURL: strings.TrimSuffix(siteURL, "/"),
	}
}

// PlaceholderURL is the image used for sliders without a thumbnail or image.
func (r *ListingRenderer) PlaceholderURL() string {
	return r.absolute(PlaceholderPath)
}

// absolute prefixes a site-relative path with the site URL. Absolute and
// protocol-relative refs are returned as is.
func (r *ListingRenderer) absolute(ref string) string {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return r.siteURL + ref
	}
	return ref
}

// RenderVisible renders every slider marked show, newest first, followed by
// the carousel assets. It returns an empty string when nothing is visible.
func (r *ListingRenderer) RenderVisible(ctx context.Context) (string, error) {
	sliders, err := r.sliders.ListByVisibility(ctx, domain.VisibilityShow)
	if err != nil {
		return "", fmt.Errorf("failed to query visible sliders: %w", err)
	}
	if len(sliders) == 0 {
		return "", nil
	}

	slides := make([]slideData, 0, len(sliders))
	for _, s := range sliders {
		slides = append(slides, r.slide(s))
	}

	var out strings.Builder
	if err := listingTmpl.Execute(&out, slides); err != nil {
		return "", fmt.Errorf("failed to render slider listing: %w", err)
	}
	return out.String(), nil
}

// slide picks the display image: the thumbnail, then the image field, then
// the placeholder.
func (r *ListingRenderer) slide(s *domain.Slider) slideData {
	data := slideData{
		Src:         r.PlaceholderURL(),
		Alt:         "slider-placeholder",
		Title:       s.Title,
		Description: s.Description,
	}

	switch {
	case s.ThumbnailRef != "":
		data.Src, data.Alt = r.absolute(s.ThumbnailRef), "slider-image"
	case s.ImageRef != "":
		data.Src, data.Alt = r.absolute(s.ImageRef), "slider-image"
	}
	return data
}
