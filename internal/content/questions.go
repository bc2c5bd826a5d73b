// Package content owns the question/answer lifecycle and the saved-question
// collections, including the cascade that keeps the vote ledger consistent
// when content is deleted.
package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type Service struct {
	db       *gorm.DB
	recorder *interactions.Recorder
}

func NewService(db *gorm.DB, recorder *interactions.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

type CreateQuestionInput struct {
	Title   string
	Content string
}

// CreateQuestion persists a new question and schedules the posting
// reputation for its author.
func (s *Service) CreateQuestion(in CreateQuestionInput, authorID int) (*models.Question, error) {
	if authorID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if in.Title == "" {
		return nil, &apperrors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Content == "" {
		return nil, &apperrors.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	question := models.Question{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: authorID,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, &apperrors.TransactionError{Err: err}
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionPost,
		TargetID:    question.ID,
		TargetType:  models.TargetQuestion,
		PerformerID: authorID,
		AuthorID:    authorID,
	})
	return &question, nil
}

// GetQuestion loads one question with its author.
func (s *Service) GetQuestion(id int) (*models.Question, error) {
	var question models.Question
	if err := s.db.Preload("Author").First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "question"}
		}
		return nil, err
	}
	return &question, nil
}

type EditQuestionInput struct {
	Title   string
	Content string
}

// EditQuestion replaces the title and content of the caller's own question
// and records an edit interaction. Editing moves no reputation.
func (s *Service) EditQuestion(questionID int, in EditQuestionInput, userID int) (*models.Question, error) {
	if userID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if in.Title == "" {
		return nil, &apperrors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Content == "" {
		return nil, &apperrors.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var question models.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "question"}
			}
			return err
		}

		if question.AuthorID != userID {
			return apperrors.ErrForbidden
		}

		return tx.Model(&question).Updates(map[string]any{
			"title":   in.Title,
			"content": in.Content,
		}).Error
	})
	if err != nil {
		if apperrors.IsClientError(err) {
			return nil, err
		}
		return nil, &apperrors.TransactionError{Err: err}
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionEdit,
		TargetID:    questionID,
		TargetType:  models.TargetQuestion,
		PerformerID: userID,
		AuthorID:    question.AuthorID,
	})
	return &question, nil
}

type ListQuestionsInput struct {
	Page     int
	PageSize int
	Filter   string // newest | unanswered | popular | mostviewed
}

// ListQuestions returns one page of questions and whether more follow.
func (s *Service) ListQuestions(in ListQuestionsInput) ([]models.Question, bool, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		in.PageSize = 10
	}

	query := s.db.Model(&models.Question{})
	switch in.Filter {
	case "unanswered":
		query = query.Where("answers = 0").Order("created_at desc")
	case "popular":
		query = query.Order("upvotes desc")
	case "mostviewed":
		query = query.Order("views desc")
	default: // newest
		query = query.Order("created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, false, err
	}

	offset := (in.Page - 1) * in.PageSize
	var questions []models.Question
	if err := query.Preload("Author").Offset(offset).Limit(in.PageSize).Find(&questions).Error; err != nil {
		return nil, false, err
	}

	isNext := total > int64(offset+len(questions))
	return questions, isNext, nil
}

// IncrementViews bumps the view counter and records a view interaction when
// the viewer is known.
func (s *Service) IncrementViews(questionID, viewerID int) (int, error) {
	res := s.db.Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, &apperrors.NotFoundError{Resource: "question"}
	}

	var question models.Question
	if err := s.db.Select("id", "views", "author_id").First(&question, questionID).Error; err != nil {
		return 0, err
	}

	if viewerID > 0 {
		s.recorder.Enqueue(interactions.Event{
			Action:      models.ActionView,
			TargetID:    questionID,
			TargetType:  models.TargetQuestion,
			PerformerID: viewerID,
			AuthorID:    question.AuthorID,
		})
	}
	return question.Views, nil
}

// DeleteQuestion removes the question together with everything hanging off
// it: saved-collection entries, votes on the question, its answers and their
// votes. All of it happens in one transaction; the deletion reputation for
// the author fires once, after commit. The question row is read under
// FOR UPDATE so the cascade serializes with in-flight vote transactions;
// without the lock a concurrent vote could commit between the vote purge and
// the question delete and leave an orphaned vote row behind.
func (s *Service) DeleteQuestion(questionID, userID int) error {
	if userID <= 0 {
		return apperrors.ErrUnauthorized
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := lockForUpdate(tx).First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "question"}
			}
			return err
		}

		if question.AuthorID != userID {
			return apperrors.ErrForbidden
		}

		if err := tx.Where("question_id = ?", questionID).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ? AND target_type = ?", questionID, models.TargetQuestion).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		var answerIDs []int
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", questionID).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("target_id IN ? AND target_type = ?", answerIDs, models.TargetAnswer).
				Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Question{}, questionID).Error
	})
	if err != nil {
		if apperrors.IsClientError(err) {
			return err
		}
		return &apperrors.TransactionError{Err: err}
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionDelete,
		TargetID:    questionID,
		TargetType:  models.TargetQuestion,
		PerformerID: userID,
		AuthorID:    userID,
	})
	return nil
}
