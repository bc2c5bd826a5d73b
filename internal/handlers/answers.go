package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/content"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type AnswerHandler struct {
	content *content.Service
}

func NewAnswerHandler(service *content.Service) *AnswerHandler {
	return &AnswerHandler{content: service}
}

// GetAnswers returns a page of answers for a question
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	answers, total, isNext, err := h.content.ListAnswers(content.ListAnswersInput{
		QuestionID: questionID,
		Page:       page,
		PageSize:   pageSize,
		Filter:     c.Query("filter"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if answers == nil {
		answers = []models.Answer{}
	}
	c.JSON(http.StatusOK, gin.H{
		"answers":       answers,
		"total_answers": total,
		"is_next":       isNext,
	})
}

// CreateAnswer posts an answer under a question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	answer, err := h.content.CreateAnswer(questionID, input.Content, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// DeleteAnswer deletes an answer and its votes (PROTECTED)
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	answerID, ok := pathID(c, "answerId")
	if !ok {
		return
	}

	if err := h.content.DeleteAnswer(answerID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
