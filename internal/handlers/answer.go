package handlers

import (
	"net/http"

	"askstack/internal/services"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct{}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{}
}

type createAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (h *AnswerHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var input createAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := services.CreateAnswer(user.ID, input.QuestionID, input.Content)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

type updateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *AnswerHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var input updateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := services.UpdateAnswer(id, user.ID, input.Content)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := services.DeleteAnswer(id, user.ID); err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted"})
}

// Accept marks an answer as the accepted solution. Only the question owner
// may accept; the service keeps the single-accepted invariant.
func (h *AnswerHandler) Accept(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	answer, err := services.AcceptAnswer(id, user.ID)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
