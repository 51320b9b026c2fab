// Package service implements the business logic: identity, the project
// store, and the funding ledger.
package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ilqareskerov/AccessDenied/internal/apperrors"
	"github.com/ilqareskerov/AccessDenied/internal/config"
	"github.com/ilqareskerov/AccessDenied/internal/repository"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// parseAmount parses a monetary wire value: a strictly positive decimal with
// at most two fractional digits.
func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, apperrors.Validation("%s is required", field)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperrors.Validation("%s must be a decimal number", field)
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.Validation("%s must be positive", field)
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, apperrors.Validation("%s must have at most 2 decimal places", field)
	}
	return amount, nil
}

// internalErr passes typed errors through unchanged and wraps storage
// failures as internal.
func internalErr(msg string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(msg, err)
}
