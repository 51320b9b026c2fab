package models

import "fmt"

// ProjectStatus is the closed set of campaign states.
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusFunding    ProjectStatus = "funding"
	StatusSuccessful ProjectStatus = "successful"
	StatusFailed     ProjectStatus = "failed"
	StatusCancelled  ProjectStatus = "cancelled"
)

// ParseProjectStatus validates s against the known statuses.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case StatusDraft, StatusFunding, StatusSuccessful, StatusFailed, StatusCancelled:
		return ProjectStatus(s), nil
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

// ProjectStatusOrDefault resolves a listing filter: unknown values silently
// fall back to funding, preserved for compatibility with existing clients.
func ProjectStatusOrDefault(s string) ProjectStatus {
	status, err := ParseProjectStatus(s)
	if err != nil {
		return StatusFunding
	}
	return status
}

// InvestmentStatus is the closed set of ledger entry states.
type InvestmentStatus string

const (
	InvestmentPending   InvestmentStatus = "pending"
	InvestmentConfirmed InvestmentStatus = "confirmed"
	InvestmentFailed    InvestmentStatus = "failed"
)

// Role is the closed set of user roles. Recorded at registration and carried
// in the identity token; no operation currently branches on it.
type Role string

const (
	RoleInvestor     Role = "investor"
	RoleProjectOwner Role = "project_owner"
	RoleAdmin        Role = "admin"
)

// ParseRole validates s against the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleInvestor, RoleProjectOwner, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
