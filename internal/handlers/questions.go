package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/content"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type QuestionHandler struct {
	content *content.Service
}

func NewQuestionHandler(service *content.Service) *QuestionHandler {
	return &QuestionHandler{content: service}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// GetQuestions returns a page of questions
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	questions, isNext, err := h.content.ListQuestions(content.ListQuestionsInput{
		Page:     page,
		PageSize: pageSize,
		Filter:   c.Query("filter"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"is_next":   isNext,
	})
}

// GetQuestion returns a single question by ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	question, err := h.content.GetQuestion(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// CreateQuestion creates a new question (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	question, err := h.content.CreateQuestion(content.CreateQuestionInput{
		Title:   input.Title,
		Content: input.Content,
	}, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// EditQuestion updates a question's title and content (PROTECTED)
func (h *QuestionHandler) EditQuestion(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.EditQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	question, err := h.content.EditQuestion(id, content.EditQuestionInput{
		Title:   input.Title,
		Content: input.Content,
	}, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// IncrementViews bumps the view counter for a question
func (h *QuestionHandler) IncrementViews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	viewerID, _ := extractUserID(c)
	views, err := h.content.IncrementViews(id, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"views": views})
}

// DeleteQuestion deletes a question and everything attached to it (PROTECTED)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.content.DeleteQuestion(id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
