package services

import (
	"path/filepath"
	"testing"

	"askstack/internal/db"
	"askstack/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// setupTestDB points the package-global connection at a throwaway sqlite
// database so the engines run against a real transactional store.
func setupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "askstack_test.db")
	conn, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = conn
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createQuestion(t *testing.T, author *models.User, title string) *models.Question {
	t.Helper()
	question, err := CreateQuestion(author.ID, title, "body of "+title, nil)
	if err != nil {
		t.Fatalf("create question %q: %v", title, err)
	}
	return question
}

func createAnswer(t *testing.T, author *models.User, questionID uint, content string) *models.Answer {
	t.Helper()
	answer, err := CreateAnswer(author.ID, questionID, content)
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}

func reputationOf(t *testing.T, userID uint) int {
	t.Helper()
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		t.Fatalf("load user %d: %v", userID, err)
	}
	return user.Reputation
}

func notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	if err := db.DB.Where("user_id = ?", userID).Order("id ASC").Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications for %d: %v", userID, err)
	}
	return notifications
}
