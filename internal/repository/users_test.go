package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash", "Alice A.", "investor").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FullName:     "Alice A.",
		Role:         models.RoleInvestor,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	err := repo.CreateUser(context.Background(), &models.User{
		Username: "alice", Email: "alice@example.com", Role: models.RoleInvestor,
	})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "full_name", "role", "created_at", "updated_at"}))

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "full_name", "role", "created_at", "updated_at"}).
			AddRow(int64(7), "bob", "bob@example.com", "hash", "", "project_owner", now, now))

	user, err := repo.FindUserByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, models.RoleProjectOwner, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserPasswordNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(int64(9), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetUserPassword(context.Background(), 9, "newhash")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
