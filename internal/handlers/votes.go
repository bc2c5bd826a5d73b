package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/votes"
)

type VoteHandler struct {
	coordinator *votes.Coordinator
}

func NewVoteHandler(coordinator *votes.Coordinator) *VoteHandler {
	return &VoteHandler{coordinator: coordinator}
}

// CastVote toggles the caller's vote on a question or answer (PROTECTED)
func (h *VoteHandler) CastVote(c *gin.Context) {
	voterID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input votes.CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id, target_type and vote_type are required"})
		return
	}

	state, err := h.coordinator.CastVote(input, voterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Vote recorded",
		"has_upvoted":   state.HasUpvoted,
		"has_downvoted": state.HasDownvoted,
	})
}

// GetVoteState returns whether the caller has voted on a target (PROTECTED)
func (h *VoteHandler) GetVoteState(c *gin.Context) {
	voterID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := strconv.Atoi(c.Query("target_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id must be an integer"})
		return
	}
	targetType := models.TargetType(c.Query("target_type"))

	state, err := h.coordinator.HasVoted(targetID, targetType, voterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
