package services

import (
	"errors"
	"log"

	"askstack/internal/db"
	"askstack/internal/models"
	"askstack/internal/utils"

	"gorm.io/gorm"
)

// CreateQuestion inserts a question with its tags in one transaction, then
// fans out mention notifications from the description. Tag linkage uses
// get-or-create by unique name; a lost creation race is resolved by
// re-reading once, after which the conflict is surfaced.
func CreateQuestion(userID uint, title, description string, tagNames []string) (*models.Question, error) {
	question := models.Question{
		UserID:      userID,
		Title:       title,
		Description: description,
		Slug:        utils.Slugify(title),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// The insert runs under a savepoint so a slug collision does not
		// poison the surrounding transaction; retry once with a random
		// suffix before giving up.
		insertErr := tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(&question).Error
		})
		if insertErr != nil {
			question.ID = 0
			question.Slug = question.Slug + "-" + utils.RandStringBytesMaskImpr(6)
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}

		for _, name := range tagNames {
			tag, err := getOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			if err := tx.Model(&question).Association("Tags").Append(tag); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyMentions(userID, description, question.ID, models.VoteTargetQuestion)

	return &question, nil
}

// getOrCreateTag resolves a tag by its unique name, creating it when absent.
// When two requests race to create the same new name, the loser re-reads the
// winner's row.
func getOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(&tag).Error
	})
	if createErr == nil {
		return &tag, nil
	}

	// Insert lost to a concurrent creator; the row should exist now.
	tag = models.Tag{}
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, ErrConflict
	}
	return &tag, nil
}

// notifyMentions raises a mention notification for every @name in the text.
// Best effort after the primary mutation committed.
func notifyMentions(actorID uint, text string, entityID uint, entityType string) {
	for _, username := range utils.ExtractMentions(text) {
		if err := NotifyMention(username, actorID, entityID, entityType); err != nil {
			log.Printf("mention notification for @%s failed: %v", username, err)
		}
	}
}

// UpdateQuestion edits title/description with an ownership check. Slug is
// stable across edits.
func UpdateQuestion(id, userID uint, title, description string) (*models.Question, error) {
	question, err := ownedQuestion(id, userID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		question.Title = title
	}
	if description != "" {
		question.Description = description
	}
	if err := db.DB.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a question owned by userID.
func DeleteQuestion(id, userID uint) error {
	question, err := ownedQuestion(id, userID)
	if err != nil {
		return err
	}
	return db.DB.Select("Tags").Delete(question).Error
}

func ownedQuestion(id, userID uint) (*models.Question, error) {
	var question models.Question
	if err := db.DB.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if question.UserID != userID {
		return nil, ErrForbidden
	}
	return &question, nil
}
