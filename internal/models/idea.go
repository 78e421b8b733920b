package models

import "time"

// IdeaStatus is the lifecycle state of an Idea.
type IdeaStatus string

const (
	StatusDraft     IdeaStatus = "draft"
	StatusScheduled IdeaStatus = "scheduled"
	StatusPublished IdeaStatus = "published"
)

// next maps each status to the only status it may move forward to.
var next = map[IdeaStatus]IdeaStatus{
	StatusDraft:     StatusScheduled,
	StatusScheduled: StatusPublished,
}

// Valid reports whether s is one of the known statuses.
func (s IdeaStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// CanTransitionTo reports whether an idea in status s may move to target.
// Staying in the same status is allowed; moving backwards or skipping is not.
func (s IdeaStatus) CanTransitionTo(target IdeaStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if s == target {
		return true
	}
	return next[s] == target
}

// Idea represents a single content idea owned by one user. The JSON keys
// (_id, userId, created_at) are the ones the web client reads.
type Idea struct {
	ID          string     `json:"_id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Platform    string     `json:"platform" db:"platform"`
	Status      IdeaStatus `json:"status" db:"status"`
	OwnerID     string     `json:"userId" db:"owner_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
