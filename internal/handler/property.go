package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertyhub/propertyhub-go/internal/middleware"
	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/service"
)

// PropertyHandler handles HTTP requests for property records.
type PropertyHandler struct {
	service *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// HandleCreate handles POST /api/properties requests.
func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Create(r.Context(), ident.User, req)
	if err != nil {
		if isPropertyValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/properties requests.
func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	properties, err := h.service.List(r.Context(), ident.User)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}
	if properties == nil {
		properties = []model.PropertyResponse{}
	}

	writeJSON(w, http.StatusOK, properties)
}

// HandleGet handles GET /api/properties/{id} requests.
func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	resp, err := h.service.Get(r.Context(), ident.User, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Property not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/properties/{id} requests.
func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Update(r.Context(), ident.User, chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case isPropertyValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrPropertyNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("Property not found"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/properties/{id} requests.
func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if !ident.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authentication required"))
		return
	}

	if err := h.service.Delete(r.Context(), ident.User, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Property not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isPropertyValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrTitleTooLong) ||
		errors.Is(err, service.ErrInvalidPropertyType)
}
