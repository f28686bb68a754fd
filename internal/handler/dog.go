package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
	"github.com/sakif/dogmatch/internal/service"
)

// DogHandler serves the dog listing endpoints.
type DogHandler struct {
	dogSvc *service.DogService
	logger *slog.Logger
}

func NewDogHandler(dogSvc *service.DogService, logger *slog.Logger) *DogHandler {
	return &DogHandler{dogSvc: dogSvc, logger: logger}
}

type dogCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	BreedID     int64  `json:"breedId" validate:"required,gt=0"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
	Age         string `json:"age" validate:"omitempty,oneof=baby young adult senior"`
	Picture     string `json:"picture"`
	Description string `json:"description"`
	GoodWKids   *bool  `json:"goodWKids"`
	GoodWDogs   *bool  `json:"goodWDogs"`
	GoodWCats   *bool  `json:"goodWCats"`
	ShelterID   int64  `json:"shelterId" validate:"required,gt=0"`
}

type dogUpdateRequest struct {
	Name        *string `json:"name"`
	BreedID     *int64  `json:"breedId" validate:"omitempty,gt=0"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female"`
	Age         *string `json:"age" validate:"omitempty,oneof=baby young adult senior"`
	Picture     *string `json:"picture"`
	Description *string `json:"description"`
	GoodWKids   *bool   `json:"goodWKids"`
	GoodWDogs   *bool   `json:"goodWDogs"`
	GoodWCats   *bool   `json:"goodWCats"`
}

func (req *dogUpdateRequest) patch() *repository.Patch {
	p := new(repository.Patch)
	if req.Name != nil {
		p.Set("name", *req.Name)
	}
	if req.BreedID != nil {
		p.Set("breedId", *req.BreedID)
	}
	if req.Gender != nil {
		p.Set("gender", *req.Gender)
	}
	if req.Age != nil {
		p.Set("age", *req.Age)
	}
	if req.Picture != nil {
		p.Set("picture", *req.Picture)
	}
	if req.Description != nil {
		p.Set("description", *req.Description)
	}
	// The store binds patch values straight into the nullable boolean
	// columns, so these go in as plain bools.
	if req.GoodWKids != nil {
		p.Set("goodWKids", *req.GoodWKids)
	}
	if req.GoodWDogs != nil {
		p.Set("goodWDogs", *req.GoodWDogs)
	}
	if req.GoodWCats != nil {
		p.Set("goodWCats", *req.GoodWCats)
	}
	return p
}

// dogFilterFromQuery builds the listing filter from query parameters.
// The goodW* parameters accept yes/no (or true/false); anything else is
// a validation error.
func dogFilterFromQuery(r *http.Request) (repository.DogFilter, error) {
	q := r.URL.Query()
	filter := repository.DogFilter{
		Name:   q.Get("name"),
		Gender: q.Get("gender"),
		Age:    q.Get("age"),
	}

	if raw := q.Get("breedId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, apperror.ValidationFailed("breedId", "must be a positive integer")
		}
		filter.BreedID = id
	}

	for _, p := range []struct {
		name string
		dst  *model.TriState
	}{
		{"goodWKids", &filter.GoodWKids},
		{"goodWDogs", &filter.GoodWDogs},
		{"goodWCats", &filter.GoodWCats},
	} {
		tri, err := model.ParseTriState(q.Get(p.name))
		if err != nil {
			return filter, apperror.ValidationFailed(p.name, "must be yes or no")
		}
		*p.dst = tri
	}
	return filter, nil
}

// HandleList returns local and remote dogs, local first, optionally
// filtered.
//
// GET /api/dogs
func (h *DogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	filter, err := dogFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	dogs, err := h.dogSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dogs)
}

// HandleGet returns the dogs matching an id. Numeric ids may match both
// a local and a remote dog, so the response is a list.
//
// GET /api/dogs/{id}
func (h *DogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	dogs, err := h.dogSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dogs)
}

// HandleCreate registers a new dog under the caller's shelter.
//
// POST /api/dogs
func (h *DogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dogCreateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	dog := &model.Dog{
		Name:        req.Name,
		BreedID:     req.BreedID,
		Gender:      req.Gender,
		Age:         req.Age,
		Picture:     req.Picture,
		Description: req.Description,
		GoodWKids:   model.TriFromBoolPtr(req.GoodWKids),
		GoodWDogs:   model.TriFromBoolPtr(req.GoodWDogs),
		GoodWCats:   model.TriFromBoolPtr(req.GoodWCats),
		ShelterID:   model.LocalID(req.ShelterID),
	}
	if err := h.dogSvc.Create(r.Context(), identity, dog); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dog)
}

// HandleUpdate applies a partial update to a local dog.
//
// PATCH /api/dogs/{id}
func (h *DogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "must be a local numeric id"))
		return
	}

	var req dogUpdateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	dog, err := h.dogSvc.Update(r.Context(), identity, id, req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dog)
}

// HandleDelete removes a local dog.
//
// DELETE /api/dogs/{id}
func (h *DogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "must be a local numeric id"))
		return
	}

	if err := h.dogSvc.Delete(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
