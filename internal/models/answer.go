package models

import (
	"time"
)

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content    string    `gorm:"type:text;not null" json:"content"` // markdown source
	IsAccepted bool      `gorm:"default:false" json:"is_accepted"`  // at most one true per question
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Not stored, filled on list queries
	VoteScore int `gorm:"-" json:"vote_score"`
}
