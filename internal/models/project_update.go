package models

import "time"

// ProjectUpdate is an append-only status post on a project.
type ProjectUpdate struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"-"`
	UpdateText string    `json:"update_text"`
	CreatedAt  time.Time `json:"created_at"`
}
