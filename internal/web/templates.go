// Package web renders the synthesized metadata page served to crawlers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"facebookfix/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData is everything the metadata page template needs.
type PageData struct {
	Record    *domain.Metadata
	OEmbedURL string
}

// Templates holds the parsed HTML templates.
type Templates struct {
	templates *template.Template
}

// NewTemplates parses all embedded templates.
func NewTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{templates: tmpl}, nil
}

// Render writes the named template to the response.
func (t *Templates) Render(w http.ResponseWriter, name string, data PageData) error {
	tmpl := t.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return nil
}
