// Package web renders the server-side HTML pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/api/session"
	"github.com/healthwhisperer/wellness/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives. Data carries the page-specific
// view model.
type Page struct {
	Title   string
	User    *domain.User
	Flashes []session.Flash
	// CSRF is echoed back by every form as csrf_token.
	CSRF string
	Data any
}

var funcMap = template.FuncMap{
	"FormatDateTime": FormatDateTime,
	"ShortDate":      func(t time.Time) string { return t.Format("01/02") },
	"Nl2br":          Nl2br,
	"Year":           func() int { return time.Now().Year() },
	"FlashClass":     flashClass,
}

// FormatDateTime formats t as "January 2, 2006 at 3:04 PM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}

// Nl2br escapes s and turns newlines into <br> tags.
func Nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func flashClass(kind string) string {
	if kind == session.FlashError {
		return "alert-error"
	}
	return "alert-success"
}

// Renderer implements echo.Renderer over the embedded templates. Each page is
// parsed together with the layout and stored under its file name.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := path.Base(file)
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, file, layoutFile)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the page called name, e.g. "dashboard.html".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return tmpl.Execute(w, data)
}
