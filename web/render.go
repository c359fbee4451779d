package web

import (
	"fmt"
	"html/template"
	"io"

	"github.com/seenimoa/equibull/pkg/models"
)

// Page names accepted by Renderer.Render.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageNews     = "news"
	PageAnalysis = "analysis"
)

var pageNames = []string{PageHome, PageAbout, PageNews, PageAnalysis}

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a one-shot notification shown at the top of the next page.
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Page is the data every template receives.
type Page struct {
	Title        string
	Active       string // nav entry to highlight
	Toasts       []Toast
	MarketStatus string
	Year         int

	// Subscription form.
	Subscribed bool
	Next       string // where POST /subscribe redirects back to

	// News list.
	News       []models.NewsArticle
	NewsFailed bool
	Mood       *models.NewsSentiment // market-wide sentiment of News

	// Stock search.
	Symbol   string
	Analysis *models.StockAnalysis
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout, partials and every page template.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(Funcs()).
		ParseFS(assets, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(assets, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page to w.
func (r *Renderer) Render(w io.Writer, page string, data *Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
