package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a user's profile with their questions and answers
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID := c.Param("id")
	var user models.User

	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var questions []models.Question
	h.db.Where("author_id = ?", user.ID).Order("created_at desc").Find(&questions)

	var answerCount int64
	h.db.Model(&models.Answer{}).Where("author_id = ?", user.ID).Count(&answerCount)

	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"bio":        user.Bio,
			"avatar":     user.Avatar,
			"reputation": user.Reputation,
			"created_at": user.CreatedAt,
		},
		"questions":    questions,
		"answer_count": answerCount,
	})
}
