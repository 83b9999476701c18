package services

import (
	"errors"
	"fmt"
	"log"

	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/gorm"
)

// AcceptAnswer marks one answer as the question's accepted solution. Only the
// question's author may accept. The clear-old / set-new / update-reference
// steps commit together so no observer ever sees two accepted answers or a
// reference pointing at an unaccepted one. Re-accepting the already accepted
// answer is a no-op success.
func AcceptAnswer(answerID, requesterID uint) (*models.Answer, error) {
	var answer models.Answer
	if err := db.DB.First(&answer, answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var question models.Question
	if err := db.DB.First(&question, answer.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if question.UserID != requesterID {
		return nil, ErrForbidden
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Unaccept whatever currently holds the flag under this question.
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ? AND is_accepted = ?", question.ID, true).
			Update("is_accepted", false).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Answer{}).
			Where("id = ?", answer.ID).
			Update("is_accepted", true).Error; err != nil {
			return err
		}

		return tx.Model(&models.Question{}).
			Where("id = ?", question.ID).
			Update("accepted_answer_id", answer.ID).Error
	})
	if err != nil {
		return nil, err
	}
	answer.IsAccepted = true

	// Best effort: a failed notification never unwinds the accept.
	if answer.UserID != requesterID {
		_, err := CreateNotification(
			answer.UserID,
			&requesterID,
			models.NotificationTypeAcceptedAnswer,
			"Your answer was accepted!",
			fmt.Sprintf("Your answer to %q was accepted", question.Title),
			&answer.ID,
			models.VoteTargetAnswer,
		)
		if err != nil {
			log.Printf("accepted-answer notification for answer %d failed: %v", answer.ID, err)
		}
	}

	return &answer, nil
}
