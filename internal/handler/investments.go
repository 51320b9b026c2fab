package handler

import (
	"net/http"
	"time"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/middleware"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

type investmentResponse struct {
	ID           int64                   `json:"id"`
	UserID       int64                   `json:"user_id"`
	ProjectID    int64                   `json:"project_id"`
	ProjectTitle string                  `json:"project_title"`
	Amount       string                  `json:"amount"`
	Status       models.InvestmentStatus `json:"status"`
	InvestedAt   time.Time               `json:"invested_at"`
}

func newInvestmentResponse(inv *models.Investment) investmentResponse {
	return investmentResponse{
		ID:           inv.ID,
		UserID:       inv.UserID,
		ProjectID:    inv.ProjectID,
		ProjectTitle: inv.ProjectTitle,
		Amount:       inv.Amount.StringFixed(2),
		Status:       inv.Status,
		InvestedAt:   inv.InvestedAt,
	}
}

type makeInvestmentRequest struct {
	Amount string `json:"amount"`
}

// MakeInvestment records an investment by the authenticated user in the
// project named by the path.
func (h *Handler) MakeInvestment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, apperrors.Unauthorized("missing identity"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req makeInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	investment, err := h.svc.MakeInvestment(r.Context(), identity.UserID, id, req.Amount)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newInvestmentResponse(investment))
}

// MyInvestments lists the authenticated user's investments, newest first.
func (h *Handler) MyInvestments(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, apperrors.Unauthorized("missing identity"))
		return
	}

	investments, err := h.svc.ListMyInvestments(r.Context(), identity.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	out := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		out = append(out, newInvestmentResponse(inv))
	}
	respondJSON(w, http.StatusOK, out)
}
