package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propertyhub/propertyhub-go/internal/middleware"
	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse("Email already registered"))
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusBadRequest, errorResponse("Invalid credentials"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/auth/me requests. The identity was resolved by
// the auth middleware; no further lookup happens here.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	writeJSON(w, http.StatusOK, model.PublicUser(ident.User))
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrNameRequired) ||
		errors.Is(err, service.ErrNameTooLong) ||
		errors.Is(err, service.ErrEmailRequired) ||
		errors.Is(err, service.ErrPasswordTooShort)
}
