package services

import (
	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/gorm"
)

// Reputation actions
const (
	ActionQuestionUpvoted   = "question received an upvote"
	ActionQuestionDownvoted = "question received a downvote"
	ActionAnswerUpvoted     = "answer received an upvote"
	ActionAnswerDownvoted   = "answer received a downvote"
)

// Reputation deltas
const (
	ReputationUpvote   = 10
	ReputationDownvote = -5
)

// AdjustReputation applies a signed delta to a user's reputation counter and
// records a ledger entry. It always runs inside the caller's transaction and
// is never committed independently; negative totals are permitted.
func AdjustReputation(tx *gorm.DB, userID uint, delta int, action string) error {
	entry := models.ReputationLog{
		UserID: userID,
		Amount: delta,
		Action: action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", delta)).
		Error
}

// ListReputationLog returns a user's most recent ledger entries.
func ListReputationLog(userID uint, limit int) ([]models.ReputationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ReputationLog
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
