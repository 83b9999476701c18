package services

import (
	"errors"
	"fmt"

	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/gorm"
)

const defaultNotificationLimit = 20

// CreateNotification persists one notification record, unread by default.
func CreateNotification(recipientID uint, actorID *uint, typ models.NotificationType, title, message string, relatedID *uint, relatedType string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:            recipientID,
		ActorID:           actorID,
		Type:              typ,
		Title:             title,
		Message:           message,
		RelatedEntityID:   relatedID,
		RelatedEntityType: relatedType,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// NotifyMention resolves a mentioned username and raises a mention
// notification. Unknown usernames and self-mentions are silently skipped.
func NotifyMention(username string, actorID uint, entityID uint, entityType string) error {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if user.ID == actorID {
		return nil
	}

	var actor models.User
	if err := db.DB.First(&actor, actorID).Error; err != nil {
		return err
	}

	_, err := CreateNotification(
		user.ID,
		&actorID,
		models.NotificationTypeMention,
		"You were mentioned",
		fmt.Sprintf("%s mentioned you in a %s", actor.Username, entityType),
		&entityID,
		entityType,
	)
	return err
}

// ListNotifications returns a user's notifications, newest first.
func ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	var notifications []models.Notification
	err := db.DB.Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a user.
func UnreadCount(userID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification as read. A notification that does not
// belong to the requesting user is reported as not found, never touched.
func MarkRead(notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := db.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	notification.IsRead = true
	if err := db.DB.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllRead marks every unread notification of a user as read. Idempotent.
func MarkAllRead(userID uint) error {
	return db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).
		Error
}
