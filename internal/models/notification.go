package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeAnswerToQuestion NotificationType = "answer_to_question"
	NotificationTypeCommentAnswer    NotificationType = "comment_answer"
	NotificationTypeMention          NotificationType = "mention"
	NotificationTypeAcceptedAnswer   NotificationType = "accepted_answer"
	// Declared for parity with the notification enumeration but never
	// produced; milestone thresholds are pending a product decision.
	NotificationTypeVoteMilestone NotificationType = "vote_milestone"
)

type Notification struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            uint             `gorm:"not null;index" json:"user_id"` // recipient
	User              User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID           *uint            `gorm:"index" json:"actor_id"` // who triggered it
	Actor             User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type              NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title             string           `gorm:"not null" json:"title"`
	Message           string           `gorm:"type:text" json:"message"`
	RelatedEntityID   *uint            `json:"related_entity_id"`
	RelatedEntityType string           `gorm:"size:10" json:"related_entity_type"` // question or answer
	IsRead            bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt         time.Time        `json:"created_at"`
}
