// Package view renders the HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/page"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	ListTemplate     = "list.html"
	DetailTemplate   = "detail.html"
	FormTemplate     = "form.html"
	ConfirmTemplate  = "confirm_delete.html"
	NotFoundTemplate = "not_found.html"
	ErrorTemplate    = "error.html"
)

var pageTemplates = []string{
	ListTemplate,
	DetailTemplate,
	FormTemplate,
	ConfirmTemplate,
	NotFoundTemplate,
	ErrorTemplate,
}

var funcs = template.FuncMap{
	"detailPath":   page.DetailPath,
	"editPath":     page.EditPath,
	"deletePath":   page.DeletePath,
	"defaultImage": func() string { return model.DefaultImageURL },
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page with data into w. Nothing is written when
// execution fails.
func (r *Renderer) Render(w io.Writer, name string, data Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Page is the data every template receives.
type Page struct {
	Title   string
	Content any
}

// List is the list page content.
type List struct {
	Mode     string
	Error    string
	Creators []model.Creator
}

// Detail is the detail page content.
type Detail struct {
	Mode     string
	NotFound bool
	Error    string
	BackPath string
	Creator  model.Creator
}

// Form is the content of the edit and create forms.
type Form struct {
	// Mode is the state of the seeding fetch; create forms are always
	// populated.
	Mode         string
	NotFound     bool
	Editing      bool
	Heading      string
	Action       string
	CancelPath   string
	SubmitLabel  string
	BusyLabel    string
	Busy         bool
	Deleting     bool
	OriginalName string
	Error        string
	Input        model.CreatorInput
}

// Confirm is the delete confirmation content.
type Confirm struct {
	Name       string
	Prompt     string
	Error      string
	CancelPath string
}

// NotFound is the unknown route content.
type NotFound struct {
	Path string
}

// Error is the generic failure content.
type Error struct {
	Status  int
	Message string
}
