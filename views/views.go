package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/internal/catalog"
	"github.com/faideclothing/faide-store/views/helpers"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(helpers.FuncMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page carries the fields every template's chrome needs.
type Page struct {
	Title string
	Query string
}

// HomeData drives the default view: hero, lookbook grid and shop sections.
type HomeData struct {
	Page
	Products []catalog.Product
	Lookbook []catalog.LookbookEntry
}

// LookbookData drives the single-image lookbook route.
type LookbookData struct {
	Page
	Entry catalog.LookbookEntry
	Index int
	Total int
	Prev  int
	Next  int
}

// ProductData drives the product detail route.
type ProductData struct {
	Page
	Product catalog.Product
	Thumbs  []string
}

// PolicySection is one heading with its paragraphs and bullets.
type PolicySection struct {
	Heading    string
	Paragraphs []string
	Bullets    []string
}

// PolicyData drives the legal pages.
type PolicyData struct {
	Page
	Intro    string
	Sections []PolicySection
}
