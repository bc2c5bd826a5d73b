package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/content"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type CollectionHandler struct {
	content *content.Service
}

func NewCollectionHandler(service *content.Service) *CollectionHandler {
	return &CollectionHandler{content: service}
}

// ToggleSave saves or unsaves a question for the caller (PROTECTED)
func (h *CollectionHandler) ToggleSave(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	saved, err := h.content.ToggleSave(questionID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// GetSaved returns the caller's saved questions (PROTECTED)
func (h *CollectionHandler) GetSaved(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questions, err := h.content.ListSaved(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, questions)
}
