package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/repository"
	"github.com/sakif/dogmatch/internal/service"
)

// AdopterHandler serves the adopter profile and favorites endpoints.
type AdopterHandler struct {
	adopterSvc  *service.AdopterService
	favoriteSvc *service.FavoritesService
	logger      *slog.Logger
}

func NewAdopterHandler(adopterSvc *service.AdopterService, favoriteSvc *service.FavoritesService, logger *slog.Logger) *AdopterHandler {
	return &AdopterHandler{adopterSvc: adopterSvc, favoriteSvc: favoriteSvc, logger: logger}
}

type adopterUpdateRequest struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	Picture         *string `json:"picture"`
	Description     *string `json:"description"`
	PrivateOutdoors *bool   `json:"privateOutdoors"`
	NumOfDogs       *int    `json:"numOfDogs" validate:"omitempty,gte=0"`
	PreferredGender *string `json:"preferredGender"`
	PreferredAge    *string `json:"preferredAge"`
}

func (req *adopterUpdateRequest) patch() *repository.Patch {
	p := new(repository.Patch)
	if req.Email != nil {
		p.Set("email", *req.Email)
	}
	if req.Picture != nil {
		p.Set("picture", *req.Picture)
	}
	if req.Description != nil {
		p.Set("description", *req.Description)
	}
	if req.PrivateOutdoors != nil {
		p.Set("privateOutdoors", *req.PrivateOutdoors)
	}
	if req.NumOfDogs != nil {
		p.Set("numOfDogs", *req.NumOfDogs)
	}
	if req.PreferredGender != nil {
		p.Set("preferredGender", *req.PreferredGender)
	}
	if req.PreferredAge != nil {
		p.Set("preferredAge", *req.PreferredAge)
	}
	return p
}

// HandleList returns adopters, optionally filtered by username or
// email.
//
// GET /api/adopters
func (h *AdopterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	q := r.URL.Query()
	filter := repository.AdopterFilter{
		Username: q.Get("username"),
		Email:    q.Get("email"),
	}

	adopters, err := h.adopterSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adopters)
}

// HandleGet returns a single adopter, favorites included.
//
// GET /api/adopters/{username}
func (h *AdopterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	adopter, err := h.adopterSvc.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adopter)
}

// HandleUpdate applies a partial profile update. Only the adopter
// itself or an admin may update.
//
// PATCH /api/adopters/{username}
func (h *AdopterHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req adopterUpdateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	adopter, err := h.adopterSvc.Update(r.Context(), identity, chi.URLParam(r, "username"), req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adopter)
}

// HandleUpdatePassword replaces the adopter's password.
//
// PATCH /api/adopters/{username}/password
func (h *AdopterHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req passwordUpdateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	if err := h.adopterSvc.UpdatePassword(r.Context(), identity, chi.URLParam(r, "username"), req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes the adopter account and its favorites.
//
// DELETE /api/adopters/{username}
func (h *AdopterHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.adopterSvc.Delete(r.Context(), identity, chi.URLParam(r, "username")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFavorite marks a dog, local or remote, as a favorite.
//
// POST /api/adopters/{username}/favorites/{dogId}
func (h *AdopterHandler) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")
	if !identity.CanActFor(auth.KindAdopter, username) {
		writeError(w, apperror.Forbidden("cannot act for another user"))
		return
	}

	entry, err := h.favoriteSvc.Favorite(r.Context(), username, chi.URLParam(r, "dogId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleUnfavorite removes a dog from the favorites list.
//
// DELETE /api/adopters/{username}/favorites/{dogId}
func (h *AdopterHandler) HandleUnfavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")
	if !identity.CanActFor(auth.KindAdopter, username) {
		writeError(w, apperror.Forbidden("cannot act for another user"))
		return
	}

	if err := h.favoriteSvc.Unfavorite(r.Context(), username, chi.URLParam(r, "dogId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListFavorites resolves the favorites ledger into full dog
// records. Entries no longer resolvable anywhere are silently dropped.
//
// GET /api/adopters/{username}/favorites
func (h *AdopterHandler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	dogs, err := h.favoriteSvc.ResolveFavorites(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dogs)
}
