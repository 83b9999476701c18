package handlers

import (
	"net/http"
	"time"

	"askstack/internal/db"
	"askstack/internal/models"
	"askstack/internal/services"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
)

const topUsersCacheKey = "users:top"

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile returns a public user profile with activity counts.
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var questionCount, answerCount int64
	db.DB.Model(&models.Question{}).Where("user_id = ?", user.ID).Count(&questionCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ?", user.ID).Count(&answerCount)
	user.QuestionCount = int(questionCount)
	user.AnswerCount = int(answerCount)

	c.JSON(http.StatusOK, user)
}

// Top returns the highest-reputation users, cached briefly.
func (h *UserHandler) Top(c *gin.Context) {
	if cached := utils.GetCache().Get(topUsersCacheKey); cached != nil {
		if users, ok := cached.([]models.User); ok {
			c.JSON(http.StatusOK, users)
			return
		}
	}

	var users []models.User
	if err := db.DB.Order("reputation DESC").Limit(10).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	utils.GetCache().Set(topUsersCacheKey, users, 5*time.Minute)
	c.JSON(http.StatusOK, users)
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)

	var input updateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	user.Bio = input.Bio

	if err := db.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ReputationLog lists the current user's reputation ledger entries.
func (h *UserHandler) ReputationLog(c *gin.Context) {
	user := CurrentUser(c)
	limit := utils.StringToInt(c.DefaultQuery("limit", "50"))

	entries, err := services.ListReputationLog(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reputation log"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
