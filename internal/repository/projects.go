package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

const projectColumns = `p.id, p.title, p.description, p.category, p.image_url,
		p.goal_amount, p.current_amount, p.status, p.start_date, p.end_date,
		p.owner_id, u.username, p.created_at, p.updated_at`

func scanProject(row interface {
	Scan(dest ...any) error
}) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
		&p.GoalAmount, &p.CurrentAmount, &p.Status, &p.StartDate, &p.EndDate,
		&p.OwnerID, &p.OwnerUsername, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProject creates a new project in the database
func (r *Repository) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (title, description, category, image_url, goal_amount,
			current_amount, status, start_date, end_date, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Category, p.ImageURL, p.GoalAmount,
		p.CurrentAmount, p.Status, p.StartDate, p.EndDate, p.OwnerID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// ListProjectsByStatus returns all projects with the given status, newest
// first, including owner usernames and nested updates.
func (r *Repository) ListProjectsByStatus(ctx context.Context, status models.ProjectStatus) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		WHERE p.status = $1
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if err := r.attachUpdates(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FindProjectByID retrieves a project with owner username and nested updates.
func (r *Repository) FindProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("project %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := r.attachUpdates(ctx, []*models.Project{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// attachUpdates loads the update posts for the given projects in one query,
// oldest first.
func (r *Repository) attachUpdates(ctx context.Context, projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(projects))
	byID := make(map[int64]*models.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Updates = []models.ProjectUpdate{}
	}

	query := `
		SELECT id, project_id, update_text, created_at
		FROM project_updates
		WHERE project_id = ANY($1)
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load project updates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.ProjectUpdate
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.UpdateText, &u.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan project update: %w", err)
		}
		if p, ok := byID[u.ProjectID]; ok {
			p.Updates = append(p.Updates, u)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load project updates: %w", err)
	}
	return nil
}

// CreateProjectUpdate appends a status post to a project.
func (r *Repository) CreateProjectUpdate(ctx context.Context, u *models.ProjectUpdate) error {
	query := `
		INSERT INTO project_updates (project_id, update_text)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, u.ProjectID, u.UpdateText).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project update: %w", err)
	}
	return nil
}

// ExpireFundingProjects marks funding projects whose end date has passed as
// failed and returns the number of rows changed.
func (r *Repository) ExpireFundingProjects(ctx context.Context) (int64, error) {
	query := `
		UPDATE projects
		SET status = $1, updated_at = now()
		WHERE status = $2 AND end_date IS NOT NULL AND end_date < CURRENT_DATE`
	res, err := r.db.ExecContext(ctx, query, models.StatusFailed, models.StatusFunding)
	if err != nil {
		return 0, fmt.Errorf("failed to expire projects: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to expire projects: %w", err)
	}
	return affected, nil
}
