package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // bcrypt hash
	Bio        string    `gorm:"size:200" json:"bio"`
	Reputation int       `gorm:"default:0" json:"reputation"` // mutated only through services.AdjustReputation
	Role       string    `gorm:"size:20;default:'user';not null" json:"role"` // user, moderator
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Not stored, filled on profile queries
	QuestionCount int `gorm:"-" json:"question_count,omitempty"`
	AnswerCount   int `gorm:"-" json:"answer_count,omitempty"`
}
