package services

import (
	"fmt"
	"testing"

	"anonboard/internal/db"
	"anonboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global connection at a fresh in-memory database.
// The named shared-cache DSN keeps gorm's pooled connections on the same
// database within one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.DB = conn
}

func mustCreatePost(t *testing.T, anonName, content string) *models.Post {
	t.Helper()
	post, err := CreatePost(anonName, content)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return post
}
