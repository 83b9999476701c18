package services

import (
	"errors"

	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/gorm"
)

// VoteAction tells the caller what the vote call did.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteUpdated VoteAction = "updated"
	VoteRemoved VoteAction = "removed"
)

// Vote applies one user's vote to a question or answer:
//   - no existing vote: a new one is created and the target owner's
//     reputation moves (+10 up, -5 down)
//   - existing vote with the opposite value: the vote flips in place
//   - existing vote with the same value: the vote is retracted
//
// Flips and retractions deliberately leave reputation untouched; the delta is
// applied exactly once, on creation. Lookup and mutation run in one
// transaction so concurrent votes on the same target serialize at the store,
// and the composite unique index on votes backstops the lookup race.
func Vote(voterID, targetID uint, targetType string, value int) (VoteAction, error) {
	if targetType != models.VoteTargetQuestion && targetType != models.VoteTargetAnswer {
		return "", ErrValidation
	}
	if value != models.VoteUp && value != models.VoteDown {
		return "", ErrValidation
	}

	var action VoteAction
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		ownerID, err := resolveTargetOwner(tx, targetID, targetType)
		if err != nil {
			return err
		}

		var existing models.Vote
		err = tx.Where("user_id = ? AND target_id = ? AND target_type = ?", voterID, targetID, targetType).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				UserID:     voterID,
				TargetID:   targetID,
				TargetType: targetType,
				Value:      value,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if err := AdjustReputation(tx, ownerID, reputationDelta(value), reputationAction(targetType, value)); err != nil {
				return err
			}
			action = VoteCreated
			return nil

		case err != nil:
			return err

		case existing.Value == value:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			action = VoteRemoved
			return nil

		default:
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return err
			}
			action = VoteUpdated
			return nil
		}
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

// resolveTargetOwner looks up the author of the voted entity inside the vote
// transaction. A missing target fails the whole vote.
func resolveTargetOwner(tx *gorm.DB, targetID uint, targetType string) (uint, error) {
	var ownerID uint
	var err error
	if targetType == models.VoteTargetQuestion {
		var question models.Question
		err = tx.Select("user_id").First(&question, targetID).Error
		ownerID = question.UserID
	} else {
		var answer models.Answer
		err = tx.Select("user_id").First(&answer, targetID).Error
		ownerID = answer.UserID
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

func reputationDelta(value int) int {
	if value == models.VoteUp {
		return ReputationUpvote
	}
	return ReputationDownvote
}

func reputationAction(targetType string, value int) string {
	if targetType == models.VoteTargetQuestion {
		if value == models.VoteUp {
			return ActionQuestionUpvoted
		}
		return ActionQuestionDownvoted
	}
	if value == models.VoteUp {
		return ActionAnswerUpvoted
	}
	return ActionAnswerDownvoted
}

// UserVotes returns the requesting user's votes for a set of targets, keyed
// by target id. Used by the frontend to paint vote button state.
func UserVotes(userID uint, targetIDs []uint, targetType string) (map[uint]int, error) {
	votes := make([]models.Vote, 0, len(targetIDs))
	err := db.DB.Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint]int, len(votes))
	for _, v := range votes {
		result[v.TargetID] = v.Value
	}
	return result, nil
}

// VoteScore returns upvotes minus downvotes for one target.
func VoteScore(targetID uint, targetType string) int {
	var score int64
	row := db.DB.Model(&models.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Row()
	if row != nil {
		_ = row.Scan(&score)
	}
	return int(score)
}
