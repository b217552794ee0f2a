package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"archive-keeper/models"
)

const batchSize = 100

// Open connects to the SQLite database at path and auto-migrates the
// mirror tables.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database at %s: %w", path, err)
	}
	log.Printf("Database connection established at %s.", path)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database schema migrated.")
	return db, nil
}

// Migrate creates or updates the mirror tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.RuleRow{}, &models.PageRow{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database schema: %w", err)
	}
	return nil
}

// Mirror keeps a SQLite copy of both collections for offline querying.
type Mirror struct {
	db *gorm.DB
}

func NewMirror(db *gorm.DB) *Mirror {
	return &Mirror{db: db}
}

// Sync replaces the mirrored tables with the given documents in one
// transaction.
func (m *Mirror) Sync(ctx context.Context, rules models.RuleDocument, pages models.PageDocument) error {
	ruleRows := make([]models.RuleRow, 0, len(rules.Rules))
	for _, r := range rules.Rules {
		ruleRows = append(ruleRows, models.NewRuleRow(r))
	}
	pageRows := make([]models.PageRow, 0, len(pages.Pages))
	for _, p := range pages.Pages {
		pageRows = append(pageRows, models.NewPageRow(p))
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.RuleRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear rules: %w", err)
		}
		if err := all.Delete(&models.PageRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear pages: %w", err)
		}
		if len(ruleRows) > 0 {
			if err := tx.CreateInBatches(ruleRows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert rules: %w", err)
			}
		}
		if len(pageRows) > 0 {
			if err := tx.CreateInBatches(pageRows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert pages: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Mirrored %d rules and %d pages.", len(ruleRows), len(pageRows))
	return nil
}

// Rules reads the mirrored rules back.
func (m *Mirror) Rules(ctx context.Context) ([]models.Rule, error) {
	var rows []models.RuleRow
	if err := m.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list mirrored rules: %w", err)
	}
	rules := make([]models.Rule, len(rows))
	for i, row := range rows {
		rules[i] = row.Rule()
	}
	return rules, nil
}

// Pages reads the mirrored pages back.
func (m *Mirror) Pages(ctx context.Context) ([]models.Page, error) {
	var rows []models.PageRow
	if err := m.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list mirrored pages: %w", err)
	}
	pages := make([]models.Page, len(rows))
	for i, row := range rows {
		pages[i] = row.Page()
	}
	return pages, nil
}

// Close releases the underlying connection.
func (m *Mirror) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
