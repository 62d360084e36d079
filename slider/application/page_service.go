package application

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/rs/zerolog/log"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ShortcodeExpander replaces shortcodes in rendered page content.
type ShortcodeExpander interface {
	Expand(ctx context.Context, content string) (string, error)
}

// RenderedPage is a page ready to be served.
type RenderedPage struct {
	Slug    string
	Title   string
	Summary string
	HTML    string
}

// PageService stores markdown pages and renders them with shortcodes expanded.
type PageService struct {
	repo       domain.PageRepository
	markdown   MarkdownRenderer
	shortcodes ShortcodeExpander
	now        func() time.Time
}

func NewPageService(repo domain.PageRepository, markdown MarkdownRenderer, shortcodes ShortcodeExpander) *PageService {
	return &PageService{
		repo:       repo,
		markdown:   markdown,
		shortcodes: shortcodes,
		now:        time.Now,
	}
}

// SavePage creates or replaces the page at slug. Only roles that may edit
// other users' content may change pages.
func (s *PageService) SavePage(ctx context.Context, principal domain.Principal, slug, body string) (*domain.Page, error) {
	if principal.UserID == "" || !principal.Role.EditsOthers() {
		return nil, fmt.Errorf("%w: role %q cannot edit pages", domain.ErrForbidden, principal.Role)
	}
	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("%w: bad page slug %q", domain.ErrInvalidInput, slug)
	}

	now := s.now().UTC()
	page := &domain.Page{
		Slug:      slug,
		Title:     extractTitle([]byte(body)),
		Body:      body,
		UpdatedAt: now,
		CreatedAt: now,
	}
	if err := s.repo.UpsertPage(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to save page %s: %w", slug, err)
	}

	log.Info().Str("slug", slug).Str("userID", principal.UserID).Msg("Saved page")
	return page, nil
}

// RenderPage converts the page body to HTML and expands its shortcodes.
// Shortcode output is produced on every call, so the slider listing always
// reflects the current store.
func (s *PageService) RenderPage(ctx context.Context, slug string) (*RenderedPage, error) {
	page, err := s.repo.GetPage(ctx, slug)
	if err != nil {
		return nil, err
	}

	result, err := s.markdown.Render([]byte(page.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to render page %s: %w", slug, err)
	}

	content, err := s.shortcodes.Expand(ctx, string(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to expand shortcodes on page %s: %w", slug, err)
	}

	return &RenderedPage{
		Slug:    page.Slug,
		Title:   result.Title,
		Summary: result.Summary,
		HTML:    content,
	}, nil
}
