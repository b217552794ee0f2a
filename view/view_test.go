package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archive-keeper/models"
)

var fixedNow = time.Date(2016, 3, 4, 10, 0, 0, 0, time.UTC)

func render(t *testing.T, name string, binding map[string]any) string {
	t.Helper()
	engine := New(func() time.Time { return fixedNow })
	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, name, binding))
	return buf.String()
}

func TestRuleTemplate(t *testing.T) {
	rule := models.Rule{
		ID:          "abc123",
		URL:         "http://news.example.com",
		Frequency:   models.FrequencyMonthly,
		Description: "Front <b>page</b>",
		GetLinks:    "true",
		StartDate:   "2016-03-01T10:00:00Z",
	}

	out := render(t, RuleTemplate, map[string]any{
		"Title":       rule.URL,
		"Rule":        rule,
		"Frequencies": models.Frequencies,
	})

	assert.Contains(t, out, `id="abc123"`)
	assert.Contains(t, out, "Front &lt;b&gt;page&lt;/b&gt;", "descriptions must be escaped")
	assert.Contains(t, out, `<option value="monthly" selected>`)
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "2016-04-01T00:00:00Z", "next monthly run")
}

func TestRuleListTemplate(t *testing.T) {
	out := render(t, RuleListTemplate, map[string]any{
		"Title": "Rules",
		"Rules": []models.Rule{
			{ID: "r1", URL: "http://a.example", Frequency: models.FrequencyDaily, StartDate: "2016-03-01T10:00:00Z"},
			{ID: "r2", URL: "http://b.example", Frequency: models.FrequencyHourly, StartDate: "bogus"},
		},
		"Frequencies": models.Frequencies,
		"Query":       "exa",
		"SortBy":      "frequency",
	})

	assert.Contains(t, out, `href="/rule/r1"`)
	assert.Contains(t, out, `href="/rule/r2"`)
	assert.Contains(t, out, `<option value="frequency" selected>`)
	assert.Contains(t, out, ">bogus</time>", "unparsable dates are shown verbatim")
	for _, f := range models.Frequencies {
		assert.Contains(t, out, `<option value="`+string(f)+`">`)
	}
}

func TestPageTemplates(t *testing.T) {
	page := models.Page{ID: "pg0001", URL: "http://news.example.com", Date: "2016-03-02T10:00:00Z", Tags: []string{"x", "y"}, Description: "snap"}

	out := render(t, PageTemplate, map[string]any{"Title": page.URL, "Page": page})
	assert.Contains(t, out, "<li>x</li><li>y</li>")
	assert.Contains(t, out, "2 days ago")

	out = render(t, PageListTemplate, map[string]any{"Title": "Pages", "Pages": []models.Page{page}})
	assert.Contains(t, out, "x; y")

	out = render(t, PageListTemplate, map[string]any{"Title": "Pages"})
	assert.Contains(t, out, "No pages match.")
}
