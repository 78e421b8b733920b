package handlers

import (
	"net/http"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/auth"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/services"
	"github.com/rs/zerolog/hlog"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondServiceError(w, r, err, "Invalid registration body")
		return
	}

	res, err := h.service.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondServiceError(w, r, err, "Failed to register user")
		return
	}

	hlog.FromRequest(r).Info().Str("user_id", res.User.ID).Msg("User registered")
	respondJSON(w, http.StatusOK, res)
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		respondServiceError(w, r, err, "Invalid login body")
		return
	}

	res, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(w, r, err, "Failed authentication attempt")
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err, "User from token not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
