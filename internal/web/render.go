// Package web renders the HTML pages. The templates are deliberately
// minimal: the visual layer is not this application's concern, only the
// data handed to each page is.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"ms-booking/internal/forms"
	"ms-booking/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	tmpl   *template.Template
	log    *logger.Logger
	secret []byte
}

func NewRenderer(log *logger.Logger, secret string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, log: log, secret: []byte(secret)}, nil
}

// Page is the envelope every template receives. Success only matters
// when Flash is set; failed write outcomes render with an error style.
type Page struct {
	Flash   string
	Success bool
	Data    any
}

// HTML renders a page, surfacing any flash left by a previous redirect.
// Cookie flashes are always success messages.
func (rn *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	rn.render(w, status, name, Page{Flash: rn.PopFlash(w, r), Success: true, Data: data})
}

// HTMLResult renders a write outcome directly, without a redirect.
func (rn *Renderer) HTMLResult(w http.ResponseWriter, status int, name string, result forms.Result, data any) {
	rn.render(w, status, name, Page{Flash: result.Message, Success: result.Success, Data: data})
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter) {
	rn.render(w, http.StatusNotFound, "404.html", Page{})
}

// ServerError renders the 500 page.
func (rn *Renderer) ServerError(w http.ResponseWriter) {
	rn.render(w, http.StatusInternalServerError, "500.html", Page{})
}

func (rn *Renderer) render(w http.ResponseWriter, status int, name string, page Page) {
	var buf bytes.Buffer
	if err := rn.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		rn.log.Error("RENDER", fmt.Sprintf("template %s: %v", name, err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
