package services

import (
	"errors"
	"testing"

	"askstack/internal/db"
	"askstack/internal/models"
)

func TestVoteCreateAdjustsOwnerReputation(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	question := createQuestion(t, owner, "How do goroutines work?")
	answer := createAnswer(t, owner, question.ID, "They are cheap threads. @nobody")

	action, err := Vote(voter.ID, answer.ID, models.VoteTargetAnswer, models.VoteUp)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if action != VoteCreated {
		t.Fatalf("expected created, got %s", action)
	}
	if rep := reputationOf(t, owner.ID); rep != ReputationUpvote {
		t.Fatalf("expected owner reputation %d, got %d", ReputationUpvote, rep)
	}
	if rep := reputationOf(t, voter.ID); rep != 0 {
		t.Fatalf("voter reputation should stay 0, got %d", rep)
	}

	var entries []models.ReputationLog
	db.DB.Where("user_id = ?", owner.ID).Find(&entries)
	if len(entries) != 1 || entries[0].Amount != ReputationUpvote {
		t.Fatalf("expected one +%d ledger entry, got %+v", ReputationUpvote, entries)
	}
}

func TestVoteDownvoteCostsFive(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	question := createQuestion(t, owner, "Title")

	action, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteDown)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if action != VoteCreated {
		t.Fatalf("expected created, got %s", action)
	}
	if rep := reputationOf(t, owner.ID); rep != ReputationDownvote {
		t.Fatalf("expected reputation %d, got %d", ReputationDownvote, rep)
	}
}

func TestVoteSamePolarityRetracts(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	question := createQuestion(t, owner, "Title")

	if _, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteUp); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	action, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteUp)
	if err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if action != VoteRemoved {
		t.Fatalf("expected removed, got %s", action)
	}

	var count int64
	db.DB.Model(&models.Vote{}).Where("user_id = ?", voter.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no vote rows after retraction, got %d", count)
	}

	// Retraction does not refund reputation; the delta applies once, on
	// creation. Documented behavior, not a bug.
	if rep := reputationOf(t, owner.ID); rep != ReputationUpvote {
		t.Fatalf("expected reputation to stay %d, got %d", ReputationUpvote, rep)
	}
}

func TestVoteOppositePolarityFlips(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	question := createQuestion(t, owner, "Title")

	if _, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteUp); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	action, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteDown)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if action != VoteUpdated {
		t.Fatalf("expected updated, got %s", action)
	}

	var vote models.Vote
	if err := db.DB.Where("user_id = ?", voter.ID).First(&vote).Error; err != nil {
		t.Fatalf("load vote: %v", err)
	}
	if vote.Value != models.VoteDown {
		t.Fatalf("expected polarity %d, got %d", models.VoteDown, vote.Value)
	}

	// Flips leave reputation at the creation-time value.
	if rep := reputationOf(t, owner.ID); rep != ReputationUpvote {
		t.Fatalf("expected reputation to stay %d after flip, got %d", ReputationUpvote, rep)
	}
}

func TestVoteMissingTarget(t *testing.T) {
	setupTestDB(t)
	voter := createUser(t, "voter")

	if _, err := Vote(voter.ID, 9999, models.VoteTargetAnswer, models.VoteUp); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVoteRejectsBadInput(t *testing.T) {
	setupTestDB(t)
	voter := createUser(t, "voter")

	if _, err := Vote(voter.ID, 1, "comment", models.VoteUp); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad target type, got %v", err)
	}
	if _, err := Vote(voter.ID, 1, models.VoteTargetQuestion, 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad value, got %v", err)
	}
}

func TestVoteUniqueIndexBacksLookup(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	question := createQuestion(t, owner, "Title")

	if _, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteUp); err != nil {
		t.Fatalf("vote: %v", err)
	}

	// A second row for the same (voter, target, kind) must be impossible even
	// when inserted behind the engine's back.
	dup := models.Vote{
		UserID:     voter.ID,
		TargetID:   question.ID,
		TargetType: models.VoteTargetQuestion,
		Value:      models.VoteDown,
	}
	if err := db.DB.Create(&dup).Error; err == nil {
		t.Fatal("expected unique index violation, insert succeeded")
	}

	var count int64
	db.DB.Model(&models.Vote{}).
		Where("user_id = ? AND target_id = ? AND target_type = ?", voter.ID, question.ID, models.VoteTargetQuestion).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one vote row, got %d", count)
	}
}

func TestUserVotesKeyedByTarget(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	voter := createUser(t, "voter")
	q1 := createQuestion(t, owner, "First")
	q2 := createQuestion(t, owner, "Second")

	if _, err := Vote(voter.ID, q1.ID, models.VoteTargetQuestion, models.VoteUp); err != nil {
		t.Fatalf("vote q1: %v", err)
	}
	if _, err := Vote(voter.ID, q2.ID, models.VoteTargetQuestion, models.VoteDown); err != nil {
		t.Fatalf("vote q2: %v", err)
	}

	votes, err := UserVotes(voter.ID, []uint{q1.ID, q2.ID, 999}, models.VoteTargetQuestion)
	if err != nil {
		t.Fatalf("user votes: %v", err)
	}
	if len(votes) != 2 || votes[q1.ID] != models.VoteUp || votes[q2.ID] != models.VoteDown {
		t.Fatalf("unexpected vote map: %v", votes)
	}
}

func TestVoteScoreSumsPolarity(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "owner")
	question := createQuestion(t, owner, "Title")

	for _, name := range []string{"a", "b", "c"} {
		voter := createUser(t, name)
		if _, err := Vote(voter.ID, question.ID, models.VoteTargetQuestion, models.VoteUp); err != nil {
			t.Fatalf("vote by %s: %v", name, err)
		}
	}
	down := createUser(t, "d")
	if _, err := Vote(down.ID, question.ID, models.VoteTargetQuestion, models.VoteDown); err != nil {
		t.Fatalf("downvote: %v", err)
	}

	if score := VoteScore(question.ID, models.VoteTargetQuestion); score != 2 {
		t.Fatalf("expected score 2, got %d", score)
	}
}
