// Package pages renders the server-side HTML pages. A page is executed from
// its template into a document tree so handlers can apply formdom mutations
// before the response is written.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"golang.org/x/net/html"

	"evalportal/internal/core/domain/user"
	"evalportal/internal/platform/dom"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const layoutFile = "layout.html"

const (
	Users     = "usuarios.html"
	UserEdit  = "usuario_editar.html"
	Report    = "relatorio_avaliacoes.html"
	ErrorPage = "erro.html"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one entry of the message list shown above the page content.
type Message struct {
	Level Level
	Text  string
}

// View is the data every page template receives. Body holds the page data.
type View struct {
	Title    string
	Nav      string
	Messages []Message
	Body     any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"lower": user.Lower,
	"add":   func(a, b int) int { return a + b },
	"percent": func(v float64) string {
		return strings.Replace(fmt.Sprintf("%.2f%%", v), ".", ",", 1)
	},
	"decimal": func(v float64) string {
		return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
	},
	"deref": func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	},
}

func NewRenderer() (*Renderer, error) {
	return newRenderer(embeddedTemplates)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		base := path.Base(name)
		if base == layoutFile {
			continue
		}
		tmpl, err := template.New(layoutFile).Funcs(funcs).ParseFS(fsys, "templates/"+layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", base, err)
		}
		r.pages[base] = tmpl
	}
	return r, nil
}

// Document executes the named page and parses the output.
func (r *Renderer) Document(name string, view View) (*html.Node, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return dom.Parse(&buf)
}

// Write serialises doc as the response body.
func Write(w http.ResponseWriter, status int, doc *html.Node) error {
	var buf bytes.Buffer
	if err := dom.Render(&buf, doc); err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
