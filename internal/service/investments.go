package service

import (
	"context"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
	"github.com/ilqareskerov/AccessDenied/internal/repository"
)

// MakeInvestment records an investment against a funding project. The ledger
// insert, the balance update and any goal-crossing status transition commit
// as one transaction; the project row is locked for the duration, so
// concurrent investments serialize and the funding -> successful transition
// fires exactly once.
func (s *Service) MakeInvestment(ctx context.Context, investorID, projectID int64, amountStr string) (*models.Investment, error) {
	investment := &models.Investment{
		UserID:    investorID,
		ProjectID: projectID,
		Status:    models.InvestmentConfirmed,
	}

	var goalReached bool
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx repository.DBTX) error {
		project, err := s.repo.GetProjectForUpdate(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if project.Status != models.StatusFunding {
			return apperrors.InvalidState("project is not currently accepting investments")
		}
		if project.OwnerID == investorID {
			return apperrors.Forbidden("project owners cannot invest in their own projects")
		}

		amount, err := parseAmount("amount", amountStr)
		if err != nil {
			return err
		}
		investment.Amount = amount
		investment.ProjectTitle = project.Title

		if err := s.repo.CreateInvestment(ctx, tx, investment); err != nil {
			return err
		}

		newAmount := project.CurrentAmount.Add(amount)
		newStatus := project.Status
		if newAmount.GreaterThanOrEqual(project.GoalAmount) {
			newStatus = models.StatusSuccessful
			goalReached = true
		}
		return s.repo.UpdateProjectFunding(ctx, tx, projectID, newAmount, newStatus)
	})
	if err != nil {
		return nil, internalErr("failed to process investment", err)
	}

	s.log.Infof("Investment %d: user %d -> project %d (%s)",
		investment.ID, investorID, projectID, investment.Amount.StringFixed(2))
	if goalReached {
		s.log.Infof("Project %d reached its goal", projectID)
	}
	return investment, nil
}

// ListMyInvestments returns the caller's investments, newest first.
func (s *Service) ListMyInvestments(ctx context.Context, investorID int64) ([]*models.Investment, error) {
	investments, err := s.repo.ListInvestmentsByUser(ctx, investorID)
	if err != nil {
		return nil, internalErr("failed to list investments", err)
	}
	return investments, nil
}
