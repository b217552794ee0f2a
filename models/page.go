package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PageType is the linked-data type stamped on created pages.
const PageType = "archive:Page"

// Page is a previously archived URL plus its metadata.
type Page struct {
	LinkedID    string   `json:"@id,omitempty"`
	Type        string   `json:"@type,omitempty"`
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// Clone copies p including its tag slice.
func (p Page) Clone() Page {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// SortValue returns the value of the field named by key.
func (p Page) SortValue(PageSortKey) string {
	return p.Date
}

// SearchText is the text a list query is matched against.
func (p Page) SearchText() string {
	return p.URL + p.Date
}

// PageDocument is the on-disk and /pages.json shape of the page collection.
type PageDocument struct {
	Context json.RawMessage `json:"@context,omitempty"`
	Pages   map[string]Page `json:"archivedPages"`
}

// Normalize fills identifiers that were only present as map keys.
func (d *PageDocument) Normalize() {
	if d.Pages == nil {
		d.Pages = make(map[string]Page)
	}
	for id, page := range d.Pages {
		if page.ID == "" {
			page.ID = id
			d.Pages[id] = page
		}
	}
}

// Clone returns a copy that shares no memory with d.
func (d *PageDocument) Clone() PageDocument {
	pages := make(map[string]Page, len(d.Pages))
	for id, page := range d.Pages {
		pages[id] = page.Clone()
	}
	return PageDocument{
		Context: bytes.Clone(d.Context),
		Pages:   pages,
	}
}

// PageInput carries the fields used to create a page.
type PageInput struct {
	URL         string `json:"url" form:"url"`
	Description string `json:"description" form:"description"`
	Tags        string `json:"tags" form:"tags"`
}

// Validate checks that url and description are present.
func (in PageInput) Validate() error {
	if in.URL == "" {
		return requiredError("url")
	}
	if in.Description == "" {
		return requiredError("description")
	}
	return nil
}

// PageUpdate carries the mutable page fields. Tags are appended, the
// description is replaced.
type PageUpdate struct {
	Tags        string `json:"tags" form:"tags"`
	Description string `json:"description" form:"description"`
}

// SplitTags splits a semicolon-delimited tag string, dropping empty tags.
func SplitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ";") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// PageSortKey names the field page lists are ordered by.
type PageSortKey string

const PageSortDate PageSortKey = "date"

// ParsePageSortKey accepts the sort_by values allowed for pages. An empty
// value selects date.
func ParsePageSortKey(s string) (PageSortKey, error) {
	if s == "" || PageSortKey(s) == PageSortDate {
		return PageSortDate, nil
	}
	return "", &ValidationError{
		Field:   "sort_by",
		Message: fmt.Sprintf("'%s' is not a valid choice for sort_by", s),
	}
}
