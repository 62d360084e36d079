package application

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/dfryer1193/goslider/internal/platform"
	"github.com/dfryer1193/goslider/slider/domain"
)

// NonceIssuer mints the nonce embedded in the edit form.
type NonceIssuer interface {
	IssueNonce(action, userID, object string) (string, error)
}

var metaBoxTmpl = template.Must(template.New("metabox").Parse(`<input type="hidden" name="slider_nonce" value="{{.Nonce}}">
<div class="slider-fields">
<div class="slider-row">
<label>Slider Title:</label>
<input type="text" name="slider_title" value="{{.Title}}">
</div>
<div class="slider-row">
<label>Slider Description:</label>
<textarea name="slider_description">{{.Description}}</textarea>
</div>
<div class="slider-row">
<label>Slider Image:</label>
<input type="text" name="slider_image" value="{{.Image}}">
</div>
<div class="slider-row">
<label>Slider Show/Hide:</label>
<input type="radio" name="slider_show_hide" value="show"{{if .Shown}} checked{{end}}> Show
<input type="radio" name="slider_show_hide" value="hide"{{if .Hidden}} checked{{end}}> Hide
</div>
</div>
`))

type metaBoxData struct {
	Nonce       string
	Title       string
	Description string
	Image       string
	Shown       bool
	Hidden      bool
}

// MetaBox is the "Slider Fields" section of the slider edit screen.
type MetaBox struct {
	service *SliderService
	nonces  NonceIssuer
}

func NewMetaBox(service *SliderService, nonces NonceIssuer) *MetaBox {
	return &MetaBox{
		service: service,
		nonces:  nonces,
	}
}

// Render writes the form fields for one slider, pre-filled with its stored values.
func (m *MetaBox) Render(ctx context.Context, w io.Writer, ec platform.EditContext) error {
	slider, err := m.service.Load(ctx, ec.ID)
	if err != nil {
		return err
	}

	nonce, err := m.nonces.IssueNonce(SaveAction, ec.Principal.UserID, ec.ID)
	if err != nil {
		return fmt.Errorf("failed to issue slider nonce: %w", err)
	}

	return metaBoxTmpl.Execute(w, metaBoxData{
		Nonce:       nonce,
		Title:       slider.Title,
		Description: slider.Description,
		Image:       slider.ImageRef,
		Shown:       slider.Visibility == domain.VisibilityShow,
		Hidden:      slider.Visibility == domain.VisibilityHide,
	})
}

// Save hands a submitted edit form to the slider service.
func (m *MetaBox) Save(ctx context.Context, sc platform.SaveContext) error {
	_, err := m.service.Save(ctx, SaveRequest{
		ID:        sc.ID,
		Principal: sc.Principal,
		Nonce:     sc.Form.Get(FieldNonce),
		Autosave:  sc.Autosave,
		Fields:    FieldsFromForm(sc.Form),
	})
	return err
}
