package votes

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// lockTargetAuthor resolves the target to its owning collection, locks the
// row for the rest of the transaction, and returns the author id. A missing
// target aborts the enclosing transaction with NotFound.
func lockTargetAuthor(tx *gorm.DB, targetID int, targetType models.TargetType) (int, error) {
	scope := lockForUpdate(tx).Select("id", "author_id")

	if targetType == models.TargetQuestion {
		var q models.Question
		if err := scope.First(&q, targetID).Error; err != nil {
			return 0, notFoundOr(err, "question")
		}
		return q.AuthorID, nil
	}

	var a models.Answer
	if err := scope.First(&a, targetID).Error; err != nil {
		return 0, notFoundOr(err, "answer")
	}
	return a.AuthorID, nil
}

// applyCounterDelta applies a ±1 delta to exactly one of the target's two
// counters inside the caller's transaction. The increment happens in SQL so
// concurrent transactions cannot lose updates. Zero rows affected means the
// target vanished underneath us; that aborts the transaction.
func applyCounterDelta(tx *gorm.DB, targetID int, targetType models.TargetType, voteType models.VoteType, delta int) error {
	column := "upvotes"
	if voteType == models.VoteDown {
		column = "downvotes"
	}

	var model any = &models.Question{}
	if targetType == models.TargetAnswer {
		model = &models.Answer{}
	}

	res := tx.Model(model).
		Where("id = ?", targetID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: string(targetType)}
	}
	return nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite (used by the in-memory tests) has no row locks; its single-writer
// transactions give the same serialization.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperrors.NotFoundError{Resource: resource}
	}
	return err
}
