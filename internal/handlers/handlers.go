package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/content"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/votes"
	"gorm.io/gorm"
)

// Handler combines all handler types
type Handler struct {
	Auth       *AuthHandler
	Question   *QuestionHandler
	Answer     *AnswerHandler
	Vote       *VoteHandler
	User       *UserHandler
	Collection *CollectionHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, recorder *interactions.Recorder, jwtSecret []byte) *Handler {
	contentService := content.NewService(db, recorder)
	coordinator := votes.NewCoordinator(db, recorder)

	return &Handler{
		Auth:       NewAuthHandler(db, jwtSecret),
		Question:   NewQuestionHandler(contentService),
		Answer:     NewAnswerHandler(contentService),
		Vote:       NewVoteHandler(coordinator),
		User:       NewUserHandler(db),
		Collection: NewCollectionHandler(contentService),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own content"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting concurrent update, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
