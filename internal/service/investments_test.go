package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

var lockedProjectColumns = []string{"id", "title", "goal_amount", "current_amount", "status", "owner_id"}

func lockedProjectRow(goal, current string, status models.ProjectStatus, ownerID int64) *sqlmock.Rows {
	return sqlmock.NewRows(lockedProjectColumns).
		AddRow(int64(3), "Solar farm", goal, current, string(status), ownerID)
}

func expectLockQuery(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT id, title, goal_amount, current_amount, status, owner_id").
		WithArgs(int64(3)).
		WillReturnRows(rows)
}

func TestMakeInvestmentProjectNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, sqlmock.NewRows(lockedProjectColumns))
	mock.ExpectRollback()

	_, err := svc.MakeInvestment(context.Background(), 7, 3, "10.00")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMakeInvestmentNotFunding(t *testing.T) {
	for _, status := range []models.ProjectStatus{models.StatusDraft, models.StatusSuccessful, models.StatusFailed, models.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, mock := newTestService(t)

			mock.ExpectBegin()
			expectLockQuery(mock, lockedProjectRow("100.00", "90.00", status, 1))
			mock.ExpectRollback()

			// no insert and no balance update may happen
			_, err := svc.MakeInvestment(context.Background(), 7, 3, "10.00")
			assert.True(t, apperrors.Is(err, apperrors.KindInvalidState))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMakeInvestmentOwnSelfForbidden(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 7))
	mock.ExpectRollback()

	_, err := svc.MakeInvestment(context.Background(), 7, 3, "10.00")
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMakeInvestmentInvalidAmount(t *testing.T) {
	for _, amount := range []string{"", "abc", "0", "-5.00", "1.234"} {
		t.Run(amount, func(t *testing.T) {
			svc, mock := newTestService(t)

			mock.ExpectBegin()
			expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 1))
			mock.ExpectRollback()

			_, err := svc.MakeInvestment(context.Background(), 7, 3, amount)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMakeInvestmentBelowGoal(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 1))
	mock.ExpectQuery("INSERT INTO investments").
		WithArgs(int64(7), int64(3), "5.00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invested_at"}).AddRow(int64(11), time.Now()))
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), "95.00", "funding").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	investment, err := svc.MakeInvestment(context.Background(), 7, 3, "5.00")
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentConfirmed, investment.Status)
	assert.Equal(t, "5.00", investment.Amount.StringFixed(2))
	assert.Equal(t, "Solar farm", investment.ProjectTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMakeInvestmentCrossesGoal(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 1))
	mock.ExpectQuery("INSERT INTO investments").
		WithArgs(int64(7), int64(3), "10.00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invested_at"}).AddRow(int64(12), time.Now()))
	// balance lands on exactly 100.00 and the project transitions
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), "100.00", "successful").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	investment, err := svc.MakeInvestment(context.Background(), 7, 3, "10.00")
	require.NoError(t, err)
	assert.Equal(t, "10.00", investment.Amount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two investments that only cross the goal together: the row lock serializes
// them, the second sees the first's balance, the transition fires once, and
// the final amount is the exact sum.
func TestMakeInvestmentSequentialGoalCrossing(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 1))
	mock.ExpectQuery("INSERT INTO investments").
		WithArgs(int64(7), int64(3), "5.00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invested_at"}).AddRow(int64(13), time.Now()))
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), "95.00", "funding").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "95.00", models.StatusFunding, 1))
	mock.ExpectQuery("INSERT INTO investments").
		WithArgs(int64(8), int64(3), "7.00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invested_at"}).AddRow(int64(14), time.Now()))
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), "102.00", "successful").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.MakeInvestment(context.Background(), 7, 3, "5.00")
	require.NoError(t, err)
	_, err = svc.MakeInvestment(context.Background(), 8, 3, "7.00")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMakeInvestmentCommitFailureIsInternal(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	expectLockQuery(mock, lockedProjectRow("100.00", "90.00", models.StatusFunding, 1))
	mock.ExpectQuery("INSERT INTO investments").
		WithArgs(int64(7), int64(3), "10.00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invested_at"}).AddRow(int64(15), time.Now()))
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), "100.00", "successful").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := svc.MakeInvestment(context.Background(), 7, 3, "10.00")
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMyInvestments(t *testing.T) {
	svc, mock := newTestService(t)

	newer := time.Now()
	mock.ExpectQuery("SELECT i.id, i.user_id, i.project_id, p.title").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id", "title", "amount", "status", "invested_at"}).
			AddRow(int64(2), int64(7), int64(3), "Solar farm", "10.00", "confirmed", newer).
			AddRow(int64(1), int64(7), int64(3), "Solar farm", "5.00", "confirmed", newer.Add(-time.Minute)))

	investments, err := svc.ListMyInvestments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, investments, 2)
	assert.Equal(t, "10.00", investments[0].Amount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
