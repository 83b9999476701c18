package models

import (
	"time"
)

type Question struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title            string    `gorm:"not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"` // markdown source
	Slug             string    `gorm:"uniqueIndex;not null" json:"slug"`
	AcceptedAnswerID *uint     `json:"accepted_answer_id"` // kept in lockstep with Answer.IsAccepted
	Views            int       `gorm:"default:0" json:"views"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:question_tags;" json:"tags"`

	// Not stored, filled on list/detail queries
	VoteScore   int `gorm:"-" json:"vote_score"`
	AnswerCount int `gorm:"-" json:"answer_count"`
}
