package models

import (
	"time"
)

const (
	VoteTargetQuestion = "question"
	VoteTargetAnswer   = "answer"
)

const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote is one user's vote on one votable entity. The composite unique index
// guarantees at most one row per (voter, target id, target kind) even when two
// requests race past the lookup.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_votes_voter_target" json:"user_id"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_votes_voter_target" json:"target_id"`
	TargetType string    `gorm:"size:10;not null;uniqueIndex:idx_votes_voter_target" json:"target_type"` // question or answer
	Value      int       `gorm:"not null" json:"value"`                                                  // 1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
