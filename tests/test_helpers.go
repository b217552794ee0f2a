package tests

import (
	"archive-keeper/models"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testDB    *gorm.DB
	onceDB    sync.Once
	dbInitErr error
)

// SetupTestDB initializes an in-memory SQLite database for testing
// and migrates the mirror schema.
func SetupTestDB() (*gorm.DB, error) {
	onceDB.Do(func() {
		testDB, dbInitErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if dbInitErr != nil {
			log.Printf("Failed to connect to in-memory test database: %v", dbInitErr)
			return
		}

		log.Println("In-memory test database connection established.")

		dbInitErr = testDB.AutoMigrate(&models.RuleRow{}, &models.PageRow{})
		if dbInitErr != nil {
			log.Printf("Failed to auto-migrate test database schema: %v", dbInitErr)
			return
		}
		log.Println("Test database schema migrated.")
	})
	return testDB, dbInitErr
}

// TeardownTestDB closes the test database connection.
func TeardownTestDB(db *gorm.DB) {
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing test database: %v", err)
			} else {
				log.Println("Test database closed.")
			}
		}
	}
}

// ClearMirror deletes all rows from the mirror tables.
func ClearMirror(db *gorm.DB) error {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&models.RuleRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete rule rows: %w", err)
	}
	if err := all.Delete(&models.PageRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete page rows: %w", err)
	}
	return nil
}

// CreateTestApp initializes a new Fiber app for testing purposes. Pass the
// production views and error handler so responses match the real server.
func CreateTestApp(views fiber.Views, errorHandler fiber.ErrorHandler) *fiber.App {
	if errorHandler == nil {
		errorHandler = func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return ctx.Status(code).SendString(err.Error())
		}
	}
	return fiber.New(fiber.Config{
		Immutable:    true,
		Views:        views,
		ErrorHandler: errorHandler,
	})
}

// FixtureRules is a small rule collection with distinct start dates.
func FixtureRules() models.RuleDocument {
	return models.RuleDocument{
		Context: json.RawMessage(`{"archive":"http://example.org/archive#"}`),
		Rules: map[string]models.Rule{
			"abc123": {LinkedID: "rule/abc123", Type: models.RuleType, ID: "abc123", URL: "http://news.example.com", Frequency: models.FrequencyDaily, Description: "Front page news", GetLinks: "true", StartDate: "2016-03-01T10:00:00Z"},
			"def456": {LinkedID: "rule/def456", Type: models.RuleType, ID: "def456", URL: "http://blog.example.org", Frequency: models.FrequencyWeekly, Description: "Personal blog", GetLinks: "false", StartDate: "2016-05-01T10:00:00Z"},
		},
	}
}

// FixturePages is a small page collection with distinct dates.
func FixturePages() models.PageDocument {
	return models.PageDocument{
		Context: json.RawMessage(`{"archive":"http://example.org/archive#"}`),
		Pages: map[string]models.Page{
			"pg0001": {LinkedID: "page/pg0001", Type: models.PageType, ID: "pg0001", URL: "http://news.example.com", Date: "2016-03-02T10:00:00Z", Tags: []string{"x"}, Description: "news snapshot"},
			"pg0002": {LinkedID: "page/pg0002", Type: models.PageType, ID: "pg0002", URL: "http://blog.example.org", Date: "2016-06-02T10:00:00Z", Tags: []string{}, Description: "blog snapshot"},
		},
	}
}

// WriteTestDocuments writes the fixture documents into a temp directory.
func WriteTestDocuments() (rulesPath string, pagesPath string, cleanup func(), err error) {
	tempDir, err := os.MkdirTemp("", "archive_keeper_test_*")
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create temp dir for tests: %w", err)
	}
	cleanupFunc := func() {
		os.RemoveAll(tempDir)
	}

	rulesPath = filepath.Join(tempDir, "archiveRules.json")
	pagesPath = filepath.Join(tempDir, "archivedPages.json")

	docs := map[string]any{
		rulesPath: FixtureRules(),
		pagesPath: FixturePages(),
	}
	for path, doc := range docs {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			cleanupFunc()
			return "", "", nil, fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			cleanupFunc()
			return "", "", nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return rulesPath, pagesPath, cleanupFunc, nil
}
