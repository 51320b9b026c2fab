package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/auth"
	"github.com/ilqareskerov/AccessDenied/internal/models"
)

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password, fullName, roleStr string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.Validation("missing username, email, or password")
	}

	if roleStr == "" {
		roleStr = string(models.RoleInvestor)
	}
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, apperrors.Validation("invalid role %q, valid roles are: investor, project_owner, admin", roleStr)
	}

	exists, err := s.repo.UserExists(ctx, username, email)
	if err != nil {
		return nil, internalErr("failed to check user existence", err)
	}
	if exists {
		return nil, apperrors.Conflict("username or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, internalErr("failed to create user", err)
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a signed identity token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.Validation("missing username or password")
	}

	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return "", apperrors.Unauthorized("invalid username or password")
		}
		return "", internalErr("failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid username or password")
	}

	tokenString, err := auth.GenerateToken(user, []byte(s.config.JWTSecret), s.config.TokenTTL)
	if err != nil {
		return "", apperrors.Internal("failed to generate token", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return tokenString, nil
}

// CurrentUser returns the public profile for the given user id.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, internalErr("failed to find user", err)
	}
	return user, nil
}

// ChangePassword replaces the caller's credential after verifying the
// current one. Only the hash is ever stored.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.Validation("missing current or new password")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return internalErr("failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	if err := s.repo.SetUserPassword(ctx, userID, string(hashedPassword)); err != nil {
		return internalErr("failed to set password", err)
	}

	s.log.Infof("Password changed for user %d", userID)
	return nil
}
