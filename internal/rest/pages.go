package rest

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/dfryer1193/goslider/api"
	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/gin-gonic/gin"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title>
{{- if .Summary}}<meta name="description" content="{{.Summary}}">{{end}}</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageView struct {
	Title   string
	Summary string
	// Body is the rendered markdown with shortcodes expanded.
	Body template.HTML
}

func (h *handlers) GetPage(c *gin.Context) {
	page, err := h.Pages.RenderPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	var out bytes.Buffer
	err = pageTmpl.Execute(&out, pageView{
		Title:   page.Title,
		Summary: page.Summary,
		Body:    template.HTML(page.HTML),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

func (h *handlers) PutPage(c *gin.Context) {
	var req api.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, _ := middleware.Principal(c)
	page, err := h.Pages.SavePage(c.Request.Context(), principal, c.Param("slug"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Page{
		Slug:      page.Slug,
		Title:     page.Title,
		UpdatedAt: formatTime(page.UpdatedAt),
	})
}
