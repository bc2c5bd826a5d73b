package models

import "time"

// TargetType identifies which kind of content a vote or interaction points at.
type TargetType string

const (
	TargetQuestion TargetType = "question"
	TargetAnswer   TargetType = "answer"
)

// Valid reports whether the target type is one of the known kinds.
func (t TargetType) Valid() bool {
	return t == TargetQuestion || t == TargetAnswer
}

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Valid reports whether the vote type is a known direction.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote model - at most one row per (user, target) pair. The composite unique
// index backs that invariant at the storage level; the coordinator enforces it
// transactionally.
type Vote struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	UserID     int        `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"user_id"`
	TargetID   int        `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"target_id"`
	TargetType TargetType `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"target_type"`
	VoteType   VoteType   `gorm:"not null" json:"vote_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
