package handlers

import (
	"net/http"

	"askstack/internal/services"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	limit := utils.StringToInt(c.DefaultQuery("limit", "20"))

	notifications, err := services.ListNotifications(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := CurrentUser(c)

	count, err := services.UnreadCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	notification, err := services.MarkRead(id, user.ID)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	if err := services.MarkAllRead(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}
