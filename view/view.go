// Package view renders rules and pages as HTML.
package view

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/template/html/v2"

	"archive-keeper/models"
	"archive-keeper/schedule"
)

// Template names passed to fiber.Ctx.Render.
const (
	RuleTemplate     = "rule"
	RuleListTemplate = "rule-list"
	PageTemplate     = "page"
	PageListTemplate = "page-list"
)

//go:embed templates
var templateFS embed.FS

// New returns the HTML engine over the embedded templates. now is used by
// the relative-time helpers; nil means time.Now.
func New(now func() time.Time) *html.Engine {
	if now == nil {
		now = time.Now
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]interface{}{
		"ago": func(stamp string) string {
			t, err := models.ParseTimestamp(stamp)
			if err != nil {
				return stamp
			}
			return humanize.RelTime(t, now(), "ago", "from now")
		},
		"nextRun": func(rule models.Rule) string {
			next, err := schedule.NextRun(rule, now())
			if err != nil {
				return "never"
			}
			return models.FormatTimestamp(next)
		},
		"joinTags": func(tags []string) string {
			return strings.Join(tags, "; ")
		},
	})
	return engine
}
