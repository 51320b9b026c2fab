package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

// GetProjectForUpdate loads the funding-relevant columns of a project under a
// row-level lock. Concurrent investments in the same project serialize on
// this lock, so the balance update and the goal-crossing decision see a
// consistent row. Must run inside a transaction.
func (r *Repository) GetProjectForUpdate(ctx context.Context, tx DBTX, id int64) (*models.Project, error) {
	query := `
		SELECT id, title, goal_amount, current_amount, status, owner_id
		FROM projects
		WHERE id = $1
		FOR UPDATE`
	p := &models.Project{}
	err := tx.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Title, &p.GoalAmount, &p.CurrentAmount, &p.Status, &p.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("project %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}
	return p, nil
}

// CreateInvestment inserts a ledger entry. Must run inside the same
// transaction as the matching project balance update.
func (r *Repository) CreateInvestment(ctx context.Context, tx DBTX, inv *models.Investment) error {
	query := `
		INSERT INTO investments (user_id, project_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, invested_at`
	err := tx.QueryRowContext(ctx, query, inv.UserID, inv.ProjectID, inv.Amount, inv.Status).
		Scan(&inv.ID, &inv.InvestedAt)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// UpdateProjectFunding writes the new raised total and status for a project.
// Must run inside the same transaction as the matching ledger insert.
func (r *Repository) UpdateProjectFunding(ctx context.Context, tx DBTX, projectID int64, amount decimal.Decimal, status models.ProjectStatus) error {
	query := `
		UPDATE projects
		SET current_amount = $2, status = $3, updated_at = now()
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, projectID, amount, status); err != nil {
		return fmt.Errorf("failed to update project funding: %w", err)
	}
	return nil
}

// ListInvestmentsByUser returns the user's investments, newest first, each
// annotated with the funded project's title.
func (r *Repository) ListInvestmentsByUser(ctx context.Context, userID int64) ([]*models.Investment, error) {
	query := `
		SELECT i.id, i.user_id, i.project_id, p.title, i.amount, i.status, i.invested_at
		FROM investments i
		JOIN projects p ON p.id = i.project_id
		WHERE i.user_id = $1
		ORDER BY i.invested_at DESC, i.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []*models.Investment
	for rows.Next() {
		inv := &models.Investment{}
		err := rows.Scan(&inv.ID, &inv.UserID, &inv.ProjectID, &inv.ProjectTitle,
			&inv.Amount, &inv.Status, &inv.InvestedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}
