package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// ToggleSave saves the question to the user's collection, or removes it if
// already saved. Returns whether the question is saved after the call.
func (s *Service) ToggleSave(questionID, userID int) (bool, error) {
	if userID <= 0 {
		return false, apperrors.ErrUnauthorized
	}

	var question models.Question
	if err := s.db.Select("id", "author_id").First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &apperrors.NotFoundError{Resource: "question"}
		}
		return false, err
	}

	var existing models.Collection
	err := s.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&existing).Error

	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry := models.Collection{UserID: userID, QuestionID: questionID}
	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}

	s.recorder.Enqueue(interactions.Event{
		Action:      models.ActionBookmark,
		TargetID:    questionID,
		TargetType:  models.TargetQuestion,
		PerformerID: userID,
		AuthorID:    question.AuthorID,
	})
	return true, nil
}

// ListSaved returns the user's saved questions, newest first.
func (s *Service) ListSaved(userID int) ([]models.Question, error) {
	if userID <= 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var entries []models.Collection
	if err := s.db.Where("user_id = ?", userID).
		Preload("Question").Preload("Question.Author").
		Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, entry.Question)
	}
	return questions, nil
}
