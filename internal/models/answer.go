package models

import "time"

type Answer struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Content    string `gorm:"not null" json:"content"`
	QuestionID int    `gorm:"not null;index" json:"question_id"`
	AuthorID   int    `gorm:"not null" json:"author_id"`
	Author     User   `gorm:"foreignKey:AuthorID" json:"author"`

	// Same invariant as Question: counters track active Vote rows.
	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}
