// Package handler maps HTTP requests onto service operations and serializes
// results to JSON.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		h.log.Errorf("request failed: %v", err)
	}
	respondJSON(w, statusFromKind(kind), map[string]string{"message": apperrors.Message(err)})
}

func statusFromKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindInvalidState:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses a request body into dst, tolerating an empty body so
// field-level validation in the service reports the missing values.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Validation("invalid JSON body")
	}
	return nil
}
