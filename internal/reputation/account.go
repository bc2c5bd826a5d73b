package reputation

import (
	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// Apply adds the delta to the performer's and author's reputation inside the
// caller's transaction. When performer and author are the same user (self-vote,
// self-post) only the author-side delta is applied, once, so the score is not
// double-counted.
func Apply(tx *gorm.DB, performerID, authorID int, d Delta) error {
	if d.IsZero() {
		return nil
	}

	if performerID == authorID {
		return increment(tx, performerID, d.Author)
	}

	if err := increment(tx, performerID, d.Performer); err != nil {
		return err
	}
	return increment(tx, authorID, d.Author)
}

func increment(tx *gorm.DB, userID, points int) error {
	if points == 0 {
		return nil
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", points)).Error
}
