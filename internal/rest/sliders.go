package rest

import (
	"net/http"
	"time"

	"github.com/dfryer1193/goslider/api"
	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/gin-gonic/gin"
)

// RenderSliders serves the carousel fragment for embedding in other sites.
// With no visible sliders the body is empty.
func (h *handlers) RenderSliders(c *gin.Context) {
	fragment, err := h.Listing.RenderVisible(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

func (h *handlers) GetSlider(c *gin.Context) {
	slider, err := h.Sliders.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSliderDTO(slider))
}

func (h *handlers) PutThumbnail(c *gin.Context) {
	var req api.ThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, _ := middleware.Principal(c)
	if err := h.Images.SetThumbnail(c.Request.Context(), principal, c.Param("id"), req.Path); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toSliderDTO(s *domain.Slider) api.Slider {
	return api.Slider{
		ID:          s.ID,
		AuthorID:    s.AuthorID,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.ImageRef,
		Thumbnail:   s.ThumbnailRef,
		Visibility:  string(s.Visibility),
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
