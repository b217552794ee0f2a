package storage

import (
	"archive-keeper/models"
	"archive-keeper/tests"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rulesPath      string
	pagesPath      string
	fixtureCleanup func()
)

// TestMain writes the fixture documents once for the package.
func TestMain(m *testing.M) {
	var err error
	rulesPath, pagesPath, fixtureCleanup, err = tests.WriteTestDocuments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write test documents: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	fixtureCleanup()
	os.Exit(exitCode)
}

func TestLoadRules(t *testing.T) {
	doc, err := LoadRules(rulesPath)
	require.NoError(t, err)
	assert.Equal(t, tests.FixtureRules().Rules, doc.Rules)
	assert.JSONEq(t, `{"archive":"http://example.org/archive#"}`, string(doc.Context))
}

func TestLoadPages(t *testing.T) {
	doc, err := LoadPages(pagesPath)
	require.NoError(t, err)
	assert.Equal(t, tests.FixturePages().Pages, doc.Pages)
}

func TestLoadFillsIDsFromKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	raw := `{"archivingRules": {"k1a2b3": {"url": "http://example.com", "frequency": "daily", "description": "d", "getLinks": "true", "startDate": "2015-12-01T09:30:00.123456"}}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	doc, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "k1a2b3", doc.Rules["k1a2b3"].ID)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := LoadPages(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse document")
	})

	t.Run("Wrong document", func(t *testing.T) {
		_, err := LoadPages(rulesPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archivedPages")
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "archivedPages.json")

	doc := tests.FixturePages()
	page := doc.Pages["pg0001"]
	page.Tags = append(page.Tags, "added")
	doc.Pages["pg0001"] = page

	require.NoError(t, SavePages(path, doc))
	assert.FileExists(t, path)

	loaded, err := LoadPages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "added"}, loaded.Pages["pg0001"].Tags)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestSaveRulesKeepsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archiveRules.json")
	require.NoError(t, SaveRules(path, tests.FixtureRules()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "@context")
	assert.Contains(t, generic, "archivingRules")

	var doc models.RuleDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Rules, 2)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(filepath.Join(dir, "file.json")))
	assert.DirExists(t, dir)

	require.NoError(t, EnsureDir(filepath.Join(dir, "file.json")), "EnsureDir should be idempotent")
}
