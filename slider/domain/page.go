package domain

import (
	"context"
	"time"
)

// Page is a public page whose markdown body may embed shortcodes.
type Page struct {
	Slug      string
	Title     string
	Body      string
	UpdatedAt time.Time
	CreatedAt time.Time
}

type PageRepository interface {
	UpsertPage(ctx context.Context, p *Page) error
	GetPage(ctx context.Context, slug string) (*Page, error)
}
