package services

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/gorm"
)

// CreateAnswer inserts an answer, then notifies the question's author (when
// they are not the answerer) and any mentioned users. Notifications run after
// the insert committed and never fail the answer.
func CreateAnswer(userID, questionID uint, content string) (*models.Answer, error) {
	var question models.Question
	if err := db.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	answer := models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
	}
	if err := db.DB.Create(&answer).Error; err != nil {
		return nil, err
	}

	if question.UserID != userID {
		_, err := CreateNotification(
			question.UserID,
			&userID,
			models.NotificationTypeAnswerToQuestion,
			"New answer to your question",
			fmt.Sprintf("Someone answered your question: %q", question.Title),
			&answer.ID,
			models.VoteTargetAnswer,
		)
		if err != nil {
			log.Printf("answer notification for question %d failed: %v", question.ID, err)
		}
	}

	notifyMentions(userID, content, answer.ID, models.VoteTargetAnswer)

	return &answer, nil
}

// ListAnswers returns a question's answers with vote scores, accepted answer
// first, then by score, then newest.
func ListAnswers(questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.DB.Preload("User").
		Where("question_id = ?", questionID).
		Order("is_accepted DESC, created_at DESC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	for i := range answers {
		answers[i].VoteScore = VoteScore(answers[i].ID, models.VoteTargetAnswer)
	}
	sort.SliceStable(answers, func(i, j int) bool {
		a, b := answers[i], answers[j]
		if a.IsAccepted != b.IsAccepted {
			return a.IsAccepted
		}
		if a.VoteScore != b.VoteScore {
			return a.VoteScore > b.VoteScore
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return answers, nil
}

// UpdateAnswer edits content with an ownership check.
func UpdateAnswer(id, userID uint, content string) (*models.Answer, error) {
	answer, err := ownedAnswer(id, userID)
	if err != nil {
		return nil, err
	}

	answer.Content = content
	if err := db.DB.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteAnswer removes an answer owned by userID. Deleting the accepted
// answer clears the question's accepted reference in the same transaction.
func DeleteAnswer(id, userID uint) error {
	answer, err := ownedAnswer(id, userID)
	if err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if answer.IsAccepted {
			if err := tx.Model(&models.Question{}).
				Where("id = ?", answer.QuestionID).
				Update("accepted_answer_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(answer).Error
	})
}

func ownedAnswer(id, userID uint) (*models.Answer, error) {
	var answer models.Answer
	if err := db.DB.First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if answer.UserID != userID {
		return nil, ErrForbidden
	}
	return &answer, nil
}
