package rest

import (
	"net/http"

	"github.com/dfryer1193/goslider/api"
	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

func (h *handlers) GetImage(c *gin.Context) {
	local, err := h.Images.Open(c.Request.Context(), c.Param("file"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.File(local)
}

func (h *handlers) GetPlaceholder(c *gin.Context) {
	img, err := h.Images.Placeholder()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", img)
}

// DeleteImage removes a stored image and unsets it as a thumbnail wherever it
// was used.
func (h *handlers) DeleteImage(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	if err := h.Images.Delete(c.Request.Context(), principal, c.Param("file")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PostImage stores the multipart "file" field as a new image.
func (h *handlers) PostImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	principal, _ := middleware.Principal(c)
	img, err := h.Images.Upload(c.Request.Context(), principal, fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.Image{
		Path:      img.Path,
		Hash:      img.Hash,
		CreatedAt: formatTime(img.CreatedAt),
	})
}
