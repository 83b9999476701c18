package handlers

import (
	"net/http"
	"strings"

	"askstack/internal/models"
	"askstack/internal/services"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Value int `json:"value" binding:"required,oneof=-1 1"`
}

// Vote casts, flips or retracts the current user's vote on a question or
// answer. The response carries the action taken and the fresh score.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := CurrentUser(c)

	targetType := c.Param("type") // "question" or "answer"
	targetID := utils.StringToUint(c.Param("id"))

	var input voteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote value must be -1 or 1"})
		return
	}

	action, err := services.Vote(user.ID, targetID, targetType, input.Value)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action": action,
		"score":  services.VoteScore(targetID, targetType),
	})
}

// Mine returns the current user's votes for a comma-separated id list, so the
// frontend can paint active vote buttons.
func (h *VoteHandler) Mine(c *gin.Context) {
	user := CurrentUser(c)

	targetType := c.Query("type")
	if targetType != models.VoteTargetQuestion && targetType != models.VoteTargetAnswer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be question or answer"})
		return
	}

	var ids []uint
	for _, part := range strings.Split(c.Query("ids"), ",") {
		if id := utils.StringToUint(strings.TrimSpace(part)); id != 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"votes": map[uint]int{}})
		return
	}

	votes, err := services.UserVotes(user.ID, ids, targetType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch votes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"votes": votes})
}
