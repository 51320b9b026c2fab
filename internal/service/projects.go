package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

const dateLayout = "2006-01-02"

// ListProjects returns projects matching the status filter, newest first.
// An unrecognized filter does not fail: it falls back to listing funding
// projects, which existing clients rely on.
func (s *Service) ListProjects(ctx context.Context, statusFilter string) ([]*models.Project, error) {
	status := models.ProjectStatusOrDefault(statusFilter)
	projects, err := s.repo.ListProjectsByStatus(ctx, status)
	if err != nil {
		return nil, internalErr("failed to list projects", err)
	}
	return projects, nil
}

// GetProject returns full detail for one project.
func (s *Service) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.repo.FindProjectByID(ctx, id)
	if err != nil {
		return nil, internalErr("failed to find project", err)
	}
	return project, nil
}

// CreateProjectInput carries the caller-supplied fields for a new campaign.
type CreateProjectInput struct {
	Title       string
	Description string
	GoalAmount  string
	Category    string
	ImageURL    string
	EndDate     string
}

// CreateProject creates a campaign owned by ownerID. New projects go
// straight to funding; there is no approval step.
func (s *Service) CreateProject(ctx context.Context, ownerID int64, in CreateProjectInput) (*models.Project, error) {
	if in.Title == "" || in.Description == "" || in.GoalAmount == "" {
		return nil, apperrors.Validation("missing required fields: title, description, goal_amount")
	}

	goalAmount, err := parseAmount("goal_amount", in.GoalAmount)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if in.EndDate != "" {
		d, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, apperrors.Validation("end_date must be a date in YYYY-MM-DD form")
		}
		endDate = &d
	}

	project := &models.Project{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		GoalAmount:    goalAmount,
		CurrentAmount: decimal.New(0, -2),
		Status:        models.StatusFunding,
		EndDate:       endDate,
		OwnerID:       ownerID,
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, internalErr("failed to create project", err)
	}

	s.log.Infof("Project created: %d (%s) by user %d", project.ID, project.Title, ownerID)
	return s.GetProject(ctx, project.ID)
}

// AddProjectUpdate appends a status post to a project. Only the owner may
// post updates.
func (s *Service) AddProjectUpdate(ctx context.Context, userID, projectID int64, text string) (*models.ProjectUpdate, error) {
	if text == "" {
		return nil, apperrors.Validation("update_text is required")
	}

	project, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, internalErr("failed to find project", err)
	}
	if project.OwnerID != userID {
		return nil, apperrors.Forbidden("only the project owner may post updates")
	}

	update := &models.ProjectUpdate{ProjectID: projectID, UpdateText: text}
	if err := s.repo.CreateProjectUpdate(ctx, update); err != nil {
		return nil, internalErr("failed to create project update", err)
	}

	s.log.Infof("Update posted to project %d by user %d", projectID, userID)
	return update, nil
}

// ExpireOverdueCampaigns moves funding projects past their end date to
// failed and returns how many were changed.
func (s *Service) ExpireOverdueCampaigns(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireFundingProjects(ctx)
	if err != nil {
		return 0, internalErr("failed to expire campaigns", err)
	}
	if expired > 0 {
		s.log.Infof("Expired %d overdue campaigns", expired)
	}
	return expired, nil
}
