package rest

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/dfryer1193/goslider/internal/middleware"
	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// autosaveField marks a form submission made by the editor's autosave timer.
const autosaveField = "autosave"

var editTmpl = template.Must(template.New("edit").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Labels.Edit}}</title></head>
<body>
<h1>{{.Labels.Edit}}</h1>
<form method="post" action="/admin/{{.Type}}/{{.ID}}">
{{- range .Boxes}}
<div class="postbox" id="{{.ID}}">
<h2>{{.Title}}</h2>
{{.Body}}
</div>
{{- end}}
<input type="submit" value="Save">
</form>
<form method="post" action="/admin/{{.Type}}/{{.ID}}/delete">
<input type="submit" value="Delete">
</form>
<form method="post" action="/admin/{{.Type}}/new">
<input type="submit" value="{{.Labels.AddNew}}">
</form>
</body>
</html>
`))

type editPage struct {
	Type   string
	ID     string
	Labels platform.Labels
	Boxes  []renderedBox
}

type renderedBox struct {
	ID    string
	Title string
	// Body was produced by the meta box's own template.
	Body template.HTML
}

// contentType resolves the :type parameter, answering 404 when it is unknown.
func (h *handlers) contentType(c *gin.Context) (platform.ContentType, bool) {
	ct, ok := h.Registry.ContentType(c.Param("type"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown content type"})
	}
	return ct, ok
}

// authorize loads the record's author and checks the caller may edit it.
func (h *handlers) authorize(c *gin.Context, ct platform.ContentType, principal domain.Principal) bool {
	author, err := ct.Store.AuthorOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return false
	}
	if !principal.CanEdit(author) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you cannot edit this item"})
		return false
	}
	return true
}

// NewContent creates an empty record and sends the editor to its edit screen.
// It is only routed for POST so a cross-site link cannot create records.
func (h *handlers) NewContent(c *gin.Context) {
	ct, ok := h.contentType(c)
	if !ok {
		return
	}
	principal, _ := middleware.Principal(c)

	id, err := ct.Store.Create(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/"+ct.Name+"/"+id+"/edit")
}

// EditContent renders the edit screen with every meta box of the content type.
func (h *handlers) EditContent(c *gin.Context) {
	ct, ok := h.contentType(c)
	if !ok {
		return
	}
	principal, _ := middleware.Principal(c)
	if !h.authorize(c, ct, principal) {
		return
	}

	page := editPage{Type: ct.Name, ID: c.Param("id"), Labels: ct.Labels}
	ec := platform.EditContext{ID: page.ID, Principal: principal}
	for _, mb := range h.Registry.MetaBoxes(ct.Name) {
		var buf bytes.Buffer
		if err := mb.Render(c.Request.Context(), &buf, ec); err != nil {
			respondError(c, err)
			return
		}
		page.Boxes = append(page.Boxes, renderedBox{ID: mb.ID, Title: mb.Title, Body: template.HTML(buf.String())})
	}

	var out bytes.Buffer
	if err := editTmpl.Execute(&out, page); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

// SaveContent hands the submitted form to every meta box save hook. Each hook
// decides on its own whether the submission may be written; the response is
// the same either way.
func (h *handlers) SaveContent(c *gin.Context) {
	ct, ok := h.contentType(c)
	if !ok {
		return
	}
	principal, _ := middleware.Principal(c)

	id := c.Param("id")
	if _, err := ct.Store.AuthorOf(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}

	sc := platform.SaveContext{
		ID:        id,
		Principal: principal,
		Form:      c.Request.PostForm,
		Autosave:  c.Request.PostForm.Get(autosaveField) == "1",
	}
	for _, mb := range h.Registry.MetaBoxes(ct.Name) {
		if err := mb.Save(c.Request.Context(), sc); err != nil {
			log.Error().Err(err).Str("metaBox", mb.ID).Str("id", id).Msg("Meta box save failed")
			respondError(c, err)
			return
		}
	}

	if sc.Autosave {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/"+ct.Name+"/"+id+"/edit")
}

func (h *handlers) DeleteContent(c *gin.Context) {
	ct, ok := h.contentType(c)
	if !ok {
		return
	}
	principal, _ := middleware.Principal(c)
	if !h.authorize(c, ct, principal) {
		return
	}

	if err := ct.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("type", ct.Name).Str("id", c.Param("id")).Str("userID", principal.UserID).Msg("Deleted content")
	c.Status(http.StatusNoContent)
}
