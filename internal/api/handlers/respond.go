package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/services"
	"github.com/rs/zerolog/hlog"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps service errors onto status codes. Anything not
// classified is an internal failure whose detail stays in the logs.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, errInvalidBody):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidCredentials):
		hlog.FromRequest(r).Warn().Err(err).Msg(logMsg)
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg(logMsg)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
