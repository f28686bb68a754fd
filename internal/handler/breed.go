package handler

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/sakif/dogmatch/internal/service"
)

// BreedHandler serves the breed catalog endpoints.
type BreedHandler struct {
	breedSvc *service.BreedService
	logger   *slog.Logger
}

func NewBreedHandler(breedSvc *service.BreedService, logger *slog.Logger) *BreedHandler {
	return &BreedHandler{breedSvc: breedSvc, logger: logger}
}

type breedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"breed"`
}

// HandleList returns the synced breed catalog ordered by id.
//
// GET /api/breeds
func (h *BreedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	byID, err := h.breedSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	breeds := make([]breedResponse, 0, len(byID))
	for id, name := range byID {
		breeds = append(breeds, breedResponse{ID: id, Name: name})
	}
	sort.Slice(breeds, func(i, j int) bool { return breeds[i].ID < breeds[j].ID })
	writeJSON(w, http.StatusOK, breeds)
}

// HandleSync refreshes the breed catalog from the remote listing.
// Admin only.
//
// POST /api/breeds/sync
func (h *BreedHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	n, err := h.breedSvc.Sync(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Synced int `json:"synced"`
	}{n})
}
