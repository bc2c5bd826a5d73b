package models

import "time"

// InteractionAction enumerates the user actions recorded in the audit trail.
type InteractionAction string

const (
	ActionView     InteractionAction = "view"
	ActionUpvote   InteractionAction = "upvote"
	ActionDownvote InteractionAction = "downvote"
	ActionBookmark InteractionAction = "bookmark"
	ActionPost     InteractionAction = "post"
	ActionEdit     InteractionAction = "edit"
	ActionDelete   InteractionAction = "delete"
	ActionSearch   InteractionAction = "search"
)

// Valid reports whether the action is one of the known kinds.
func (a InteractionAction) Valid() bool {
	switch a {
	case ActionView, ActionUpvote, ActionDownvote, ActionBookmark,
		ActionPost, ActionEdit, ActionDelete, ActionSearch:
		return true
	}
	return false
}

// Interaction is an append-only audit entry. Rows are written by the
// background recorder after the primary transaction commits.
type Interaction struct {
	ID         int               `gorm:"primaryKey" json:"id"`
	UserID     int               `gorm:"not null;index" json:"user_id"`
	Action     InteractionAction `gorm:"not null" json:"action"`
	TargetID   int               `gorm:"not null" json:"target_id"`
	TargetType TargetType        `gorm:"not null" json:"target_type"`
	CreatedAt  time.Time         `json:"created_at"`
}
