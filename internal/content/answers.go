package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// CreateAnswer posts an answer under a question, bumps the question's answer
// counter in the same transaction, and schedules the posting reputation.
func (s *Service) CreateAnswer(questionID int, content string, authorID int) (*models.Answer, error) {
	if authorID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if content == "" {
		return nil, &apperrors.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var answer models.Answer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.Select("id").First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "question"}
			}
			return err
		}

		answer = models.Answer{
			Content:    content,
			QuestionID: questionID,
			AuthorID:   authorID,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		return tx.Model(&models.Question{}).
			Where("id = ?", questionID).
			UpdateColumn("answers", gorm.Expr("answers + 1")).Error
	})
	if err != nil {
		if apperrors.IsClientError(err) {
			return nil, err
		}
		return nil, &apperrors.TransactionError{Err: err}
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionPost,
		TargetID:    answer.ID,
		TargetType:  models.TargetAnswer,
		PerformerID: authorID,
		AuthorID:    authorID,
	})
	return &answer, nil
}

type ListAnswersInput struct {
	QuestionID int
	Page       int
	PageSize   int
	Filter     string // newest | oldest | popular
}

// ListAnswers returns one page of a question's answers and whether more follow.
func (s *Service) ListAnswers(in ListAnswersInput) ([]models.Answer, int64, bool, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		in.PageSize = 10
	}

	query := s.db.Model(&models.Answer{}).Where("question_id = ?", in.QuestionID)
	switch in.Filter {
	case "newest":
		query = query.Order("created_at desc")
	case "oldest":
		query = query.Order("created_at asc")
	default: // popular
		query = query.Order("upvotes desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, false, err
	}

	offset := (in.Page - 1) * in.PageSize
	var answers []models.Answer
	if err := query.Preload("Author").Offset(offset).Limit(in.PageSize).Find(&answers).Error; err != nil {
		return nil, 0, false, err
	}

	isNext := total > int64(offset+len(answers))
	return answers, total, isNext, nil
}

// DeleteAnswer removes an answer, its votes, and its slot in the question's
// answer counter, in one transaction. The question may already be gone when
// this runs as part of user-initiated cleanup; the counter decrement then
// simply matches no row.
func (s *Service) DeleteAnswer(answerID, userID int) error {
	if userID <= 0 {
		return apperrors.ErrUnauthorized
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Locked read, same reason as DeleteQuestion: the vote purge and the
		// answer delete must not interleave with a concurrent vote commit.
		var answer models.Answer
		if err := lockForUpdate(tx).First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "answer"}
			}
			return err
		}

		if answer.AuthorID != userID {
			return apperrors.ErrForbidden
		}

		if err := tx.Where("target_id = ? AND target_type = ?", answerID, models.TargetAnswer).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Question{}).
			Where("id = ?", answer.QuestionID).
			UpdateColumn("answers", gorm.Expr("answers - 1")).Error; err != nil {
			return err
		}

		return tx.Delete(&answer).Error
	})
	if err != nil {
		if apperrors.IsClientError(err) {
			return err
		}
		return &apperrors.TransactionError{Err: err}
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionDelete,
		TargetID:    answerID,
		TargetType:  models.TargetAnswer,
		PerformerID: userID,
		AuthorID:    userID,
	})
	return nil
}
