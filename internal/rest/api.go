package rest

import (
	"time"

	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/shared/auth"
	"github.com/dfryer1193/goslider/slider/application"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services are the application services the HTTP layer dispatches to.
type Services struct {
	Registry *platform.Registry
	Sliders  *application.SliderService
	Listing  *application.ListingRenderer
	Pages    *application.PageService
	Images   *application.ImageService
	Users    *application.UserService
	Tokens   *auth.Signer
}

type Options struct {
	CORSOrigins   []string
	SessionTTL    time.Duration
	SecureCookies bool
}

type handlers struct {
	Services
	opts Options
}

// NewApi registers every route on router.
func NewApi(router *gin.Engine, svc Services, opts Options) {
	h := &handlers{Services: svc, opts: opts}
	requireSession := middleware.RequireSession(svc.Tokens)
	fragmentCORS := newCORS(opts.CORSOrigins)

	router.GET("/pages/:slug", h.GetPage)
	router.GET("/images/:file", h.GetImage)
	router.GET(application.PlaceholderPath, h.GetPlaceholder)
	router.GET("/api/sliders/render", fragmentCORS, h.RenderSliders)
	router.OPTIONS("/api/sliders/render", fragmentCORS)

	router.POST("/admin/login", h.Login)
	router.POST("/admin/logout", h.Logout)

	admin := router.Group("/admin", requireSession)
	{
		admin.POST("/:type/new", h.NewContent)
		admin.GET("/:type/:id/edit", h.EditContent)
		admin.POST("/:type/:id", h.SaveContent)
		admin.POST("/:type/:id/delete", h.DeleteContent)
	}

	apiV1 := router.Group("/api", requireSession)
	{
		apiV1.GET("/sliders/:id", h.GetSlider)
		apiV1.PUT("/sliders/:id/thumbnail", h.PutThumbnail)
		apiV1.POST("/images", h.PostImage)
		apiV1.DELETE("/images/:file", h.DeleteImage)
		apiV1.PUT("/pages/:slug", h.PutPage)
	}
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Accept", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
