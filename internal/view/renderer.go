// Package view renders the server-side HTML pages. Templates are embedded
// into the binary and exposed to Echo through its Renderer interface. Each
// page is compiled together with the shared layout into its own template
// set, so every page may define its own "content" block.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avdeev/bandboard/internal/repository"
)

//go:embed templates
var templateFS embed.FS

// displayLayout is how start times are shown to users.
const displayLayout = "Mon Jan 2, 2006 3:04 PM"

// Renderer implements echo.Renderer over the embedded template files.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer compiles every page template against the shared layout.
// It panics on malformed templates since those are a build defect, not a
// runtime condition.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"datetime":   formatDateTime,
		"joingenres": func(genres []string) string { return strings.Join(genres, ", ") },
		"has": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
	}

	pages := make(map[string]*template.Template)
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") || path == "templates/layout.html" {
			return nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		pages[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", path))
		return nil
	})
	if err != nil {
		panic(err)
	}
	return &Renderer{pages: pages}
}

// Render writes the named page. data is handed to the template as-is;
// handlers use the Data map helper below.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// Data is the bag of values handed to a page template.
type Data map[string]interface{}

// formatDateTime turns a repository time string into the display format.
// Unparseable values fall through unchanged rather than erroring out a
// whole page.
func formatDateTime(s string) string {
	t, err := time.Parse(repository.TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}
