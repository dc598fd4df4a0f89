package db

import (
	"log"
	"os"

	"anonboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		// Fallback for local dev if not set
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "posts.db"
		}
		dialector = sqlite.Open(path)
	}

	var err error
	// TranslateError maps driver-specific constraint violations onto
	// gorm.ErrDuplicatedKey, which the vote ledger relies on
	DB, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate runs schema migration on the given connection. Split out from
// Init so tests can run it against their own in-memory database.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Visitor{},
	)
}
