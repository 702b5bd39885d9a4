package show_api

import (
	"errors"
	"fmt"
	"net/http"

	"ms-booking/internal/forms"
	"ms-booking/internal/logger"
	"ms-booking/internal/show"
	"ms-booking/internal/web"
)

type Handler struct {
	ShowService *show.Service
	Renderer    *web.Renderer
	Logger      *logger.Logger
}

// List renders the all-shows page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ShowService.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List shows: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "shows.html", rows)
}

// CreateForm renders the empty show form.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, r, http.StatusOK, "new_show.html", nil)
}

// Create links an artist to a venue. A missing referent is a 404; a
// duplicate slot surfaces as a server error.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.ServerError(w)
		return
	}
	form := forms.ParseShowForm(r.PostForm)

	if err := form.Validate(); err != nil {
		h.Logger.Warn("API", fmt.Sprintf("Create show validation: %v", err))
		result := forms.Result{Message: "An error occurred. Show could not be listed."}
		h.Renderer.HTMLResult(w, http.StatusOK, "new_show.html", result, nil)
		return
	}

	err := h.ShowService.Create(r.Context(), form)
	if errors.Is(err, show.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create show: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	result := forms.Result{Success: true, Message: "Show was successfully listed!"}
	h.Renderer.HTMLResult(w, http.StatusOK, "home.html", result, nil)
}
