package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Renderer executes the embedded page templates. All interpolation goes
// through html/template, so server-supplied text is contextually escaped.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	return r.tmpl.ExecuteTemplate(w, page+".gohtml", data)
}
