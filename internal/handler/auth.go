package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/service"
)

// AuthHandler serves registration and login for both account kinds.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

// requireIdentity pulls the authenticated identity out of the request
// context, writing a 401 when the request is anonymous. Shared by every
// handler that requires login.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "login required",
		})
		return auth.Identity{}, false
	}
	return identity, true
}

type shelterRegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=5,max=72"`
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" validate:"omitempty,email"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

type adopterRegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Password        string `json:"password" validate:"required,min=5,max=72"`
	Email           string `json:"email" validate:"required,email"`
	Picture         string `json:"picture"`
	Description     string `json:"description"`
	PrivateOutdoors bool   `json:"privateOutdoors"`
	NumOfDogs       int    `json:"numOfDogs" validate:"gte=0"`
	PreferredGender string `json:"preferredGender"`
	PreferredAge    string `json:"preferredAge"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HandleShelterRegister creates a shelter account.
//
// POST /auth/shelters/register
func (h *AuthHandler) HandleShelterRegister(w http.ResponseWriter, r *http.Request) {
	var req shelterRegisterRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	shelter := &model.Shelter{
		Username:    req.Username,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Postcode:    req.Postcode,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Logo:        req.Logo,
		Description: req.Description,
	}
	token, err := h.authSvc.RegisterShelter(r.Context(), shelter, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// HandleShelterLogin authenticates a shelter.
//
// POST /auth/shelters/login
func (h *AuthHandler) HandleShelterLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	token, shelter, err := h.authSvc.LoginShelter(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token   string         `json:"token"`
		Shelter *model.Shelter `json:"shelter"`
	}{token, shelter})
}

// HandleAdopterRegister creates an adopter account.
//
// POST /auth/adopters/register
func (h *AuthHandler) HandleAdopterRegister(w http.ResponseWriter, r *http.Request) {
	var req adopterRegisterRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	adopter := &model.Adopter{
		Username:        req.Username,
		Email:           req.Email,
		Picture:         req.Picture,
		Description:     req.Description,
		PrivateOutdoors: req.PrivateOutdoors,
		NumOfDogs:       req.NumOfDogs,
		PreferredGender: req.PreferredGender,
		PreferredAge:    req.PreferredAge,
	}
	token, err := h.authSvc.RegisterAdopter(r.Context(), adopter, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// HandleAdopterLogin authenticates an adopter.
//
// POST /auth/adopters/login
func (h *AuthHandler) HandleAdopterLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) || !validate(w, &req) {
		return
	}

	token, adopter, err := h.authSvc.LoginAdopter(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token   string         `json:"token"`
		Adopter *model.Adopter `json:"adopter"`
	}{token, adopter})
}
