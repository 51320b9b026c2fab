package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project represents a funding campaign. CurrentAmount is the sum of all
// confirmed investments and is only ever mutated by the funding ledger.
type Project struct {
	ID            int64
	Title         string
	Description   string
	Category      string
	ImageURL      string
	GoalAmount    decimal.Decimal
	CurrentAmount decimal.Decimal
	Status        ProjectStatus
	StartDate     *time.Time
	EndDate       *time.Time
	OwnerID       int64
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Updates       []ProjectUpdate
}
