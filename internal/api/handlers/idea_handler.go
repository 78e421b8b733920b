package handlers

import (
	"errors"
	"net/http"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/auth"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/models"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/services"
	"github.com/go-chi/chi/v5"
)

// IdeaHandler handles HTTP requests for the caller's ideas.
type IdeaHandler struct {
	service services.IdeaServiceProvider
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(service services.IdeaServiceProvider) *IdeaHandler {
	return &IdeaHandler{service: service}
}

// StatusPayload defines the structure for status update requests.
type StatusPayload struct {
	Status models.IdeaStatus `json:"status"`
}

// Create handles the request to create a new idea.
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	var input services.IdeaInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondServiceError(w, r, err, "Invalid idea body")
		return
	}

	idea, err := h.service.Create(r.Context(), ownerID, input)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create idea")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": idea.ID, "message": "Idea created!"})
}

// List handles the request to list the caller's ideas, newest first.
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	ideas, err := h.service.ListMine(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to list ideas")
		return
	}
	respondJSON(w, http.StatusOK, ideas)
}

// UpdateStatus handles the request to move an idea to a new status. An idea
// that does not exist or belongs to someone else is reported as updated.
func (h *IdeaHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	var payload StatusPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondServiceError(w, r, err, "Invalid status body")
		return
	}

	err := h.service.UpdateStatus(r.Context(), ownerID, chi.URLParam(r, "id"), payload.Status)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		respondServiceError(w, r, err, "Failed to update idea status")
		return
	}
	respondMessage(w, "Status updated!")
}

// Delete handles the request to delete an idea. An idea that does not exist or
// belongs to someone else is reported as deleted.
func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	err := h.service.Delete(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		respondServiceError(w, r, err, "Failed to delete idea")
		return
	}
	respondMessage(w, "Idea deleted!")
}
