package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

var projectRowColumns = []string{
	"id", "title", "description", "category", "image_url",
	"goal_amount", "current_amount", "status", "start_date", "end_date",
	"owner_id", "username", "created_at", "updated_at",
}

func TestListProjectsByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("FROM projects p").
		WithArgs("funding").
		WillReturnRows(sqlmock.NewRows(projectRowColumns).
			AddRow(int64(2), "Bakery", "Fresh bread", "", "", "500.00", "0.00", "funding", nil, nil, int64(1), "bob", now, now).
			AddRow(int64(1), "Solar farm", "Panels", "energy", "", "1000.00", "250.00", "funding", nil, nil, int64(1), "bob", now.Add(-time.Hour), now))
	mock.ExpectQuery("FROM project_updates").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "update_text", "created_at"}).
			AddRow(int64(10), int64(1), "Panels ordered", now))

	projects, err := repo.ListProjectsByStatus(context.Background(), models.StatusFunding)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Bakery", projects[0].Title)
	assert.Equal(t, "bob", projects[0].OwnerUsername)
	assert.Empty(t, projects[0].Updates)
	require.Len(t, projects[1].Updates, 1)
	assert.Equal(t, "Panels ordered", projects[1].Updates[0].UpdateText)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProjectByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM projects p").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(projectRowColumns))

	_, err := repo.FindProjectByID(context.Background(), 42)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireFundingProjects(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE projects").
		WithArgs("failed", "funding").
		WillReturnResult(sqlmock.NewResult(0, 3))

	expired, err := repo.ExpireFundingProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
