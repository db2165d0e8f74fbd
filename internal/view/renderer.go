// Package view wires html/template into Echo's Renderer interface and holds
// the template helper functions the blog pages use.
package view

import (
	"html/template"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

// Renderer executes the parsed page templates by name.
type Renderer struct {
	templates *template.Template
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// New parses every template under dir (non-recursive, *.html).
func New(dir string) (*Renderer, error) {
	t, err := template.New("").Funcs(funcs()).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		// longDate formats a timestamp the way the post header shows it.
		"longDate": func(t interface{ Format(string) string }) string {
			return t.Format("January 2, 2006")
		},
		// year extracts the year from a YYYY-MM-DD release date.
		"year": func(date string) string {
			if i := strings.Index(date, "-"); i > 0 {
				return date[:i]
			}
			return date
		},
		// excerpt strips markup and truncates for the listing preview.
		"excerpt": func(content string, max int) string {
			text := strings.TrimSpace(tagPattern.ReplaceAllString(content, " "))
			text = strings.Join(strings.Fields(text), " ")
			runes := []rune(text)
			if len(runes) <= max {
				return text
			}
			return string(runes[:max]) + "..."
		},
		// raw marks editor-produced HTML as safe for rendering.  The editor
		// output is trusted author input, not reader input.
		"raw": func(s string) template.HTML {
			return template.HTML(s)
		},
		// initial returns the first letter for the avatar block.
		"initial": func(s string) string {
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[0]))
		},
	}
}
