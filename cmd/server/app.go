package main

import (
	"fmt"
	"strings"

	"github.com/dfryer1193/goslider/internal/config"
	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/internal/rest"
	"github.com/dfryer1193/goslider/shared/auth"
	"github.com/dfryer1193/goslider/shared/db"
	"github.com/dfryer1193/goslider/shared/db/sqlite"
	"github.com/dfryer1193/goslider/slider/application"
	"github.com/dfryer1193/goslider/slider/persistence"
)

// app is the wired server: database, services and the plugin registry.
type app struct {
	db       db.Database
	services rest.Services
}

func newApp(cfg *config.Config) (*app, error) {
	database := sqlite.NewSQLiteDB(&cfg.SQLite)
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tokens, err := auth.NewSigner(cfg.SecretKey, cfg.SessionTTL, cfg.NonceTTL)
	if err != nil {
		database.Close()
		return nil, err
	}

	sliderRepo := persistence.NewSliderRepository(database.DB())
	imageRepo := persistence.NewImageRepository(database.DB(), cfg.ImageDir)
	pageRepo := persistence.NewPageRepository(database.DB())
	userRepo := persistence.NewUserRepository(database.DB())

	registry := platform.NewRegistry()
	sliders := application.NewSliderService(sliderRepo, tokens)
	listing := application.NewListingRenderer(sliderRepo, cfg.SiteURL)
	if err := application.Register(registry, sliders, application.NewMetaBox(sliders, tokens), listing); err != nil {
		database.Close()
		return nil, err
	}

	return &app{
		db: database,
		services: rest.Services{
			Registry: registry,
			Sliders:  sliders,
			Listing:  listing,
			Pages:    application.NewPageService(pageRepo, application.NewMarkdownRenderer(cfg.SiteURL), registry),
			Images:   application.NewImageService(imageRepo, sliderRepo),
			Users:    application.NewUserService(userRepo),
			Tokens:   tokens,
		},
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// secureCookies reports whether session cookies should be HTTPS-only.
func secureCookies(siteURL string) bool {
	return strings.HasPrefix(strings.ToLower(siteURL), "https://")
}
