package venue_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/forms"
	"ms-booking/internal/genre"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/projection"
	"ms-booking/internal/venue"
	"ms-booking/internal/web"
)

type Handler struct {
	VenueService *venue.Service
	Genres       *genre.Store
	Renderer     *web.Renderer
	Logger       *logger.Logger
}

type formPage struct {
	Genres []models.Genre
	Form   *forms.VenueForm
}

type editPage struct {
	Genres []models.Genre
	Venue  projection.VenueDetail
}

type searchPage struct {
	Term    string
	Results venue.SearchResults
}

// List renders all venues grouped by city/state.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.VenueService.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List venues: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "venues.html", groups)
}

// Search matches the submitted search_term against venue names.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	results, err := h.VenueService.Search(r.Context(), term)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Search venues %q: %v", term, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "search_venues.html", searchPage{Term: term, Results: results})
}

// Show renders one venue's detail page.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	detail, err := h.VenueService.Get(r.Context(), id)
	if errors.Is(err, venue.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Show venue %d: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "show_venue.html", detail)
}

// CreateForm renders the empty venue form with the genre choices.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Genres.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Venue form genres: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "new_venue.html", formPage{Genres: genres})
}

// Create handles a venue submission. Validation failures re-render the
// form with the entered values; a natural-key match converges onto the
// existing row instead of inserting a duplicate.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.ServerError(w)
		return
	}
	form := forms.ParseVenueForm(r.PostForm)
	displayName := forms.TitleCase(form.Name)

	if err := form.Validate(); err != nil {
		h.Logger.Warn("API", fmt.Sprintf("Create venue validation: %v", err))
		genres, _ := h.Genres.List(r.Context())
		result := forms.Result{Message: "An error occurred. Venue " + displayName + " could not be listed."}
		h.Renderer.HTMLResult(w, http.StatusOK, "new_venue.html", result, formPage{Genres: genres, Form: form})
		return
	}

	if err := h.resolveGenres(r, form); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create venue genres: %v", err))
		h.Renderer.ServerError(w)
		return
	}

	created, err := h.VenueService.CreateOrUpdate(r.Context(), form)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create venue: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	result := forms.Result{Success: true, Message: "Venue " + created.Name + " was successfully listed!"}
	h.Renderer.HTMLResult(w, http.StatusOK, "home.html", result, nil)
}

// resolveGenres keeps only the submitted genre ids that exist in the
// seeded vocabulary, so an unknown id is dropped instead of surfacing
// as a constraint violation.
func (h *Handler) resolveGenres(r *http.Request, form *forms.VenueForm) error {
	if len(form.GenreIDs) == 0 {
		return nil
	}
	genres, err := h.Genres.ByIDs(r.Context(), form.GenreIDs)
	if err != nil {
		return err
	}
	ids := make([]int64, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	form.GenreIDs = ids
	return nil
}

// EditForm renders the edit form prefilled from the venue detail.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	detail, err := h.VenueService.Get(r.Context(), id)
	if errors.Is(err, venue.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Renderer.ServerError(w)
		return
	}
	genres, err := h.Genres.List(r.Context())
	if err != nil {
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "edit_venue.html", editPage{Genres: genres, Venue: detail})
}

// Edit handles a venue edit submission and redirects back to the detail
// page.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Renderer.ServerError(w)
		return
	}
	form := forms.ParseVenueForm(r.PostForm)

	if err := form.Validate(); err != nil {
		h.Logger.Warn("API", fmt.Sprintf("Edit venue %d validation: %v", id, err))
		detail, derr := h.VenueService.Get(r.Context(), id)
		if errors.Is(derr, venue.ErrNotFound) {
			h.Renderer.NotFound(w)
			return
		}
		genres, _ := h.Genres.List(r.Context())
		result := forms.Result{Message: "An error occurred. Venue " + form.Name + " could not be updated."}
		h.Renderer.HTMLResult(w, http.StatusOK, "edit_venue.html", result, editPage{Genres: genres, Venue: detail})
		return
	}

	if err := h.resolveGenres(r, form); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Edit venue %d genres: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}

	updated, err := h.VenueService.Update(r.Context(), id, form)
	if errors.Is(err, venue.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Edit venue %d: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.SetFlash(w, "Venue "+updated.Name+" updated successfully")
	http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
}

// Delete removes a venue (cascading its shows) and redirects home.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	name, err := h.VenueService.Delete(r.Context(), id)
	if errors.Is(err, venue.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Delete venue %d: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.SetFlash(w, "Venue "+name+" successfully deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
