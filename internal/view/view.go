// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Page names, relative to templates/.
const (
	MembersIndex = "members/index.html"
)

// Renderer implements echo.Renderer over the embedded templates. Each page
// is parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{MembersIndex} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layouts/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, err
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "unknown template "+name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
