package httpserver

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer serves the HTML pages through echo's Renderer interface.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every page template under dir.
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
