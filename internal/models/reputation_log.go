package models

import (
	"time"
)

type ReputationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Amount    int       `gorm:"not null" json:"amount"` // positive for gains, negative for penalties
	Action    string    `gorm:"size:100;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
