package artist_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/artist"
	"ms-booking/internal/forms"
	"ms-booking/internal/genre"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/projection"
	"ms-booking/internal/web"
)

type Handler struct {
	ArtistService *artist.Service
	Genres        *genre.Store
	Renderer      *web.Renderer
	Logger        *logger.Logger
}

type formPage struct {
	Genres []models.Genre
	Form   *forms.ArtistForm
}

type editPage struct {
	Genres []models.Genre
	Artist projection.ArtistDetail
}

type searchPage struct {
	Term    string
	Results artist.SearchResults
}

// List renders all artists, id and name only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ArtistService.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("List artists: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "artists.html", items)
}

// Search matches the submitted search_term against artist names.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	results, err := h.ArtistService.Search(r.Context(), term)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Search artists %q: %v", term, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "search_artists.html", searchPage{Term: term, Results: results})
}

// Show renders one artist's detail page.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	detail, err := h.ArtistService.Get(r.Context(), id)
	if errors.Is(err, artist.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Show artist %d: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "show_artist.html", detail)
}

// CreateForm renders the empty artist form with the genre choices.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Genres.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Artist form genres: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.HTML(w, r, http.StatusOK, "new_artist.html", formPage{Genres: genres})
}

// Create handles an artist submission; a name match converges onto the
// existing row.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.ServerError(w)
		return
	}
	form := forms.ParseArtistForm(r.PostForm)
	displayName := forms.TitleCase(form.Name)

	if err := form.Validate(); err != nil {
		h.Logger.Warn("API", fmt.Sprintf("Create artist validation: %v", err))
		genres, _ := h.Genres.List(r.Context())
		result := forms.Result{Message: "An error occurred. Artist " + displayName + " could not be listed."}
		h.Renderer.HTMLResult(w, http.StatusOK, "new_artist.html", result, formPage{Genres: genres, Form: form})
		return
	}

	if err := h.resolveGenres(r, form); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create artist genres: %v", err))
		h.Renderer.ServerError(w)
		return
	}

	created, err := h.ArtistService.CreateOrUpdate(r.Context(), form)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create artist: %v", err))
		h.Renderer.ServerError(w)
		return
	}
	result := forms.Result{Success: true, Message: "Artist " + created.Name + " was successfully listed!"}
	h.Renderer.HTMLResult(w, http.StatusOK, "home.html", result, nil)
}

// resolveGenres keeps only the submitted genre ids that exist in the
// seeded vocabulary.
func (h *Handler) resolveGenres(r *http.Request, form *forms.ArtistForm) error {
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

// EditForm renders the edit form prefilled from the artist detail.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	detail, err := h.ArtistService.Get(r.Context(), id)
	if errors.Is(err, artist.ErrNotFound) {
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
	h.Renderer.HTML(w, r, http.StatusOK, "edit_artist.html", editPage{Genres: genres, Artist: detail})
}

// Edit handles an artist edit submission and redirects back to the
// detail page.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistId"), 10, 64)
	if err != nil {
		h.Renderer.NotFound(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Renderer.ServerError(w)
		return
	}
	form := forms.ParseArtistForm(r.PostForm)

	if err := form.Validate(); err != nil {
		h.Logger.Warn("API", fmt.Sprintf("Edit artist %d validation: %v", id, err))
		detail, derr := h.ArtistService.Get(r.Context(), id)
		if errors.Is(derr, artist.ErrNotFound) {
			h.Renderer.NotFound(w)
			return
		}
		genres, _ := h.Genres.List(r.Context())
		result := forms.Result{Message: "An error occurred. Artist " + form.Name + " could not be updated."}
		h.Renderer.HTMLResult(w, http.StatusOK, "edit_artist.html", result, editPage{Genres: genres, Artist: detail})
		return
	}

	if err := h.resolveGenres(r, form); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Edit artist %d genres: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}

	updated, err := h.ArtistService.Update(r.Context(), id, form)
	if errors.Is(err, artist.ErrNotFound) {
		h.Renderer.NotFound(w)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Edit artist %d: %v", id, err))
		h.Renderer.ServerError(w)
		return
	}
	h.Renderer.SetFlash(w, "Artist "+updated.Name+" updated successfully")
	http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
}
