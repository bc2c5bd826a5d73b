package models

import "time"

// Collection is a saved-question entry. One row per (user, question) pair.
type Collection struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;uniqueIndex:idx_collections_user_question" json:"user_id"`
	QuestionID int       `gorm:"not null;uniqueIndex:idx_collections_user_question" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"question"`
	CreatedAt  time.Time `json:"created_at"`
}
