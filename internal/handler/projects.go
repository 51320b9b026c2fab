package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/middleware"
	"github.com/ilqareskerov/AccessDenied/internal/models"
	"github.com/ilqareskerov/AccessDenied/internal/service"
)

type projectResponse struct {
	ID            int64                  `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category,omitempty"`
	ImageURL      string                 `json:"image_url,omitempty"`
	GoalAmount    string                 `json:"goal_amount"`
	CurrentAmount string                 `json:"current_amount"`
	Status        models.ProjectStatus   `json:"status"`
	StartDate     *string                `json:"start_date"`
	EndDate       *string                `json:"end_date"`
	OwnerID       int64                  `json:"owner_id"`
	OwnerUsername string                 `json:"owner_username"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Updates       []models.ProjectUpdate `json:"updates"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func newProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		GoalAmount:    p.GoalAmount.StringFixed(2),
		CurrentAmount: p.CurrentAmount.StringFixed(2),
		Status:        p.Status,
		StartDate:     formatDate(p.StartDate),
		EndDate:       formatDate(p.EndDate),
		OwnerID:       p.OwnerID,
		OwnerUsername: p.OwnerUsername,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Updates:       p.Updates,
	}
}

// ListProjects returns projects filtered by status (default funding).
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = string(models.StatusFunding)
	}

	projects, err := h.svc.ListProjects(r.Context(), statusFilter)
	if err != nil {
		h.respondError(w, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrors.Validation("invalid id")
	}
	return id, nil
}

// GetProject returns detail for one project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	project, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newProjectResponse(project))
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  string `json:"goal_amount"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	EndDate     string `json:"end_date"`
}

// CreateProject creates a campaign owned by the authenticated user.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(w, apperrors.Unauthorized("missing identity"))
		return
	}

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	project, err := h.svc.CreateProject(r.Context(), identity.UserID, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newProjectResponse(project))
}

type addUpdateRequest struct {
	UpdateText string `json:"update_text"`
}

// AddProjectUpdate appends a status post to the caller's project.
func (h *Handler) AddProjectUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req addUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	update, err := h.svc.AddProjectUpdate(r.Context(), identity.UserID, id, req.UpdateText)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, update)
}
