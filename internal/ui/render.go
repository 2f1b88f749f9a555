package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"seconds": func(d time.Duration) int {
			return int(math.Ceil(d.Seconds()))
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}).ParseFS(templateFS, "templates/*.html"),
)

// Render writes the HTML page for v.
func Render(w io.Writer, v View) error {
	if err := templates.ExecuteTemplate(w, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", v.Page, err)
	}
	return nil
}
