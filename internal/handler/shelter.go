package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/dogmatch/internal/repository"
	"github.com/sakif/dogmatch/internal/service"
)

// ShelterHandler serves the shelter endpoints, including the contact
// form relay.
type ShelterHandler struct {
	shelterSvc *service.ShelterService
	contactSvc *service.ContactService
	logger     *slog.Logger
}

func NewShelterHandler(shelterSvc *service.ShelterService, contactSvc *service.ContactService, logger *slog.Logger) *ShelterHandler {
	return &ShelterHandler{shelterSvc: shelterSvc, contactSvc: contactSvc, logger: logger}
}

type shelterUpdateRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Postcode    *string `json:"postcode"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Logo        *string `json:"logo"`
	Description *string `json:"description"`
}

// patch flattens the request into an ordered patch, skipping fields the
// caller left out.
func (req *shelterUpdateRequest) patch() *repository.Patch {
	p := new(repository.Patch)
	if req.Name != nil {
		p.Set("name", *req.Name)
	}
	if req.Address != nil {
		p.Set("address", *req.Address)
	}
	if req.City != nil {
		p.Set("city", *req.City)
	}
	if req.State != nil {
		p.Set("state", *req.State)
	}
	if req.Postcode != nil {
		p.Set("postcode", *req.Postcode)
	}
	if req.PhoneNumber != nil {
		p.Set("phoneNumber", *req.PhoneNumber)
	}
	if req.Email != nil {
		p.Set("email", *req.Email)
	}
	if req.Logo != nil {
		p.Set("logo", *req.Logo)
	}
	if req.Description != nil {
		p.Set("description", *req.Description)
	}
	return p
}

type passwordUpdateRequest struct {
	Password string `json:"password" validate:"required,min=5,max=72"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// HandleList returns local and remote shelters, local first. Supports
// name, city, state and postcode query filters.
//
// GET /api/shelters
func (h *ShelterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	q := r.URL.Query()
	filter := repository.ShelterFilter{
		Name:     q.Get("name"),
		City:     q.Get("city"),
		State:    q.Get("state"),
		Postcode: q.Get("postcode"),
	}

	shelters, err := h.shelterSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shelters)
}

// HandleGet returns the shelters matching an id. Numeric ids may match
// both a local and a remote shelter, so the response is a list.
//
// GET /api/shelters/{id}
func (h *ShelterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	shelters, err := h.shelterSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shelters)
}

// HandleGetByUsername returns a single local shelter by its account
// name.
//
// GET /api/shelters/user/{username}
func (h *ShelterHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	shelter, err := h.shelterSvc.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shelter)
}

// HandleUpdate applies a partial profile update. Only the shelter
// itself or an admin may update.
//
// PATCH /api/shelters/{username}
func (h *ShelterHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req shelterUpdateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	shelter, err := h.shelterSvc.Update(r.Context(), identity, chi.URLParam(r, "username"), req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shelter)
}

// HandleUpdatePassword replaces the shelter's password.
//
// PATCH /api/shelters/{username}/password
func (h *ShelterHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req passwordUpdateRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	if err := h.shelterSvc.UpdatePassword(r.Context(), identity, chi.URLParam(r, "username"), req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes the shelter account and its dogs.
//
// DELETE /api/shelters/{username}
func (h *ShelterHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.shelterSvc.Delete(r.Context(), identity, chi.URLParam(r, "username")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleContact relays a message from the logged-in adopter to the
// shelter's contact address.
//
// POST /api/shelters/{username}/contact
func (h *ShelterHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	err := h.contactSvc.ContactShelter(r.Context(), identity, chi.URLParam(r, "username"), req.Name, req.Subject, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
