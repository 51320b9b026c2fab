package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a ledger entry: one user pledging an amount to one project.
// Immutable after creation; a confirmed entry has already been reflected in
// the project's current amount.
type Investment struct {
	ID           int64
	UserID       int64
	ProjectID    int64
	ProjectTitle string
	Amount       decimal.Decimal
	Status       InvestmentStatus
	InvestedAt   time.Time
}
