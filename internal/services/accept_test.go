package services

import (
	"errors"
	"testing"

	"askstack/internal/db"
	"askstack/internal/models"
)

func acceptedAnswers(t *testing.T, questionID uint) []models.Answer {
	t.Helper()
	var answers []models.Answer
	if err := db.DB.Where("question_id = ? AND is_accepted = ?", questionID, true).Find(&answers).Error; err != nil {
		t.Fatalf("load accepted answers: %v", err)
	}
	return answers
}

func TestAcceptAnswerSetsFlagAndReference(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	helper := createUser(t, "helper")
	question := createQuestion(t, asker, "How to test?")
	answer := createAnswer(t, helper, question.ID, "Use the testing package.")

	accepted, err := AcceptAnswer(answer.ID, asker.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !accepted.IsAccepted {
		t.Fatal("returned answer not marked accepted")
	}

	var stored models.Question
	if err := db.DB.First(&stored, question.ID).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	if stored.AcceptedAnswerID == nil || *stored.AcceptedAnswerID != answer.ID {
		t.Fatalf("question accepted reference = %v, want %d", stored.AcceptedAnswerID, answer.ID)
	}

	flagged := acceptedAnswers(t, question.ID)
	if len(flagged) != 1 || flagged[0].ID != answer.ID {
		t.Fatalf("expected exactly answer %d accepted, got %+v", answer.ID, flagged)
	}
}

func TestAcceptNotifiesAnswerAuthor(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	helper := createUser(t, "helper")
	question := createQuestion(t, asker, "How to test?")
	answer := createAnswer(t, helper, question.ID, "Like this.")

	if _, err := AcceptAnswer(answer.ID, asker.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	var accepted []models.Notification
	for _, n := range notificationsFor(t, helper.ID) {
		if n.Type == models.NotificationTypeAcceptedAnswer {
			accepted = append(accepted, n)
		}
	}
	if len(accepted) != 1 {
		t.Fatalf("expected one accepted-answer notification, got %d", len(accepted))
	}
	n := accepted[0]
	if n.RelatedEntityID == nil || *n.RelatedEntityID != answer.ID || n.RelatedEntityType != models.VoteTargetAnswer {
		t.Fatalf("notification should reference answer %d, got %+v", answer.ID, n)
	}
	if n.IsRead {
		t.Fatal("new notification should be unread")
	}
}

func TestAcceptOwnAnswerSkipsNotification(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	question := createQuestion(t, asker, "Self answered")
	answer := createAnswer(t, asker, question.ID, "Figured it out myself.")

	if _, err := AcceptAnswer(answer.ID, asker.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	for _, n := range notificationsFor(t, asker.ID) {
		if n.Type == models.NotificationTypeAcceptedAnswer {
			t.Fatalf("self-accept must not notify, got %+v", n)
		}
	}
}

func TestAcceptSwitchesToNewAnswer(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	helperA := createUser(t, "helper_a")
	helperB := createUser(t, "helper_b")
	question := createQuestion(t, asker, "Pick one")
	answerA := createAnswer(t, helperA, question.ID, "First try.")
	answerB := createAnswer(t, helperB, question.ID, "Better try.")

	if _, err := AcceptAnswer(answerA.ID, asker.ID); err != nil {
		t.Fatalf("accept A: %v", err)
	}
	if _, err := AcceptAnswer(answerB.ID, asker.ID); err != nil {
		t.Fatalf("accept B: %v", err)
	}

	flagged := acceptedAnswers(t, question.ID)
	if len(flagged) != 1 || flagged[0].ID != answerB.ID {
		t.Fatalf("expected only answer B accepted, got %+v", flagged)
	}

	var stored models.Question
	db.DB.First(&stored, question.ID)
	if stored.AcceptedAnswerID == nil || *stored.AcceptedAnswerID != answerB.ID {
		t.Fatalf("question reference = %v, want %d", stored.AcceptedAnswerID, answerB.ID)
	}
}

func TestReacceptIsNoop(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	helper := createUser(t, "helper")
	question := createQuestion(t, asker, "Stable")
	answer := createAnswer(t, helper, question.ID, "Answer.")

	if _, err := AcceptAnswer(answer.ID, asker.ID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := AcceptAnswer(answer.ID, asker.ID); err != nil {
		t.Fatalf("re-accept should succeed, got %v", err)
	}

	flagged := acceptedAnswers(t, question.ID)
	if len(flagged) != 1 || flagged[0].ID != answer.ID {
		t.Fatalf("expected same single accepted answer, got %+v", flagged)
	}
}

func TestAcceptByNonOwnerForbidden(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")
	helper := createUser(t, "helper")
	stranger := createUser(t, "stranger")
	question := createQuestion(t, asker, "Guarded")
	answer := createAnswer(t, helper, question.ID, "Answer.")

	if _, err := AcceptAnswer(answer.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if flagged := acceptedAnswers(t, question.ID); len(flagged) != 0 {
		t.Fatalf("state must be unchanged, got accepted %+v", flagged)
	}
	var stored models.Question
	db.DB.First(&stored, question.ID)
	if stored.AcceptedAnswerID != nil {
		t.Fatalf("question reference must stay nil, got %v", *stored.AcceptedAnswerID)
	}
}

func TestAcceptMissingAnswer(t *testing.T) {
	setupTestDB(t)
	asker := createUser(t, "asker")

	if _, err := AcceptAnswer(12345, asker.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
