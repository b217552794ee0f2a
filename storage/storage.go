package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"archive-keeper/models"
)

// Default locations of the two collection documents.
const (
	DefaultRulesPath = "data/archiveRules.json"
	DefaultPagesPath = "data/archivedPages.json"
)

// LoadRules reads the rule document at path.
func LoadRules(path string) (models.RuleDocument, error) {
	var doc models.RuleDocument
	if err := readDocument(path, &doc); err != nil {
		return models.RuleDocument{}, err
	}
	if doc.Rules == nil {
		return models.RuleDocument{}, fmt.Errorf("document '%s' has no \"archivingRules\" object", path)
	}
	doc.Normalize()
	return doc, nil
}

// LoadPages reads the page document at path.
func LoadPages(path string) (models.PageDocument, error) {
	var doc models.PageDocument
	if err := readDocument(path, &doc); err != nil {
		return models.PageDocument{}, err
	}
	if doc.Pages == nil {
		return models.PageDocument{}, fmt.Errorf("document '%s' has no \"archivedPages\" object", path)
	}
	doc.Normalize()
	return doc, nil
}

// SaveRules writes doc to path, replacing the file atomically.
func SaveRules(path string, doc models.RuleDocument) error {
	return writeDocument(path, doc)
}

// SavePages writes doc to path, replacing the file atomically.
func SavePages(path string, doc models.PageDocument) error {
	return writeDocument(path, doc)
}

func readDocument(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document '%s': %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse document '%s': %w", path, err)
	}
	return nil
}

// EnsureDir creates the directory holding path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	return nil
}

func writeDocument(path string, v any) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document '%s': %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for '%s': %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write '%s': %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close '%s': %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}
	return nil
}
