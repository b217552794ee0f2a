package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// RuleType is the linked-data type stamped on created rules.
const RuleType = "archive:Rule"

// Rule is a recurring archiving directive for a URL.
type Rule struct {
	LinkedID    string    `json:"@id,omitempty"`
	Type        string    `json:"@type,omitempty"`
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Frequency   Frequency `json:"frequency"`
	Description string    `json:"description"`
	GetLinks    string    `json:"getLinks"`
	StartDate   string    `json:"startDate"` // set once at creation
}

// RuleDocument is the on-disk and /rules.json shape of the rule collection.
type RuleDocument struct {
	Context json.RawMessage `json:"@context,omitempty"`
	Rules   map[string]Rule `json:"archivingRules"`
}

// Normalize fills identifiers that were only present as map keys.
func (d *RuleDocument) Normalize() {
	if d.Rules == nil {
		d.Rules = make(map[string]Rule)
	}
	for id, rule := range d.Rules {
		if rule.ID == "" {
			rule.ID = id
			d.Rules[id] = rule
		}
	}
}

// Clone returns a copy that shares no memory with d.
func (d *RuleDocument) Clone() RuleDocument {
	return RuleDocument{
		Context: bytes.Clone(d.Context),
		Rules:   maps.Clone(d.Rules),
	}
}

// RuleInput carries the fields required to create a rule.
type RuleInput struct {
	URL         string `json:"url" form:"url"`
	Frequency   string `json:"frequency" form:"frequency"`
	Description string `json:"description" form:"description"`
	GetLinks    string `json:"getLinks" form:"getLinks"`
}

// Validate checks that every field is present and the frequency is known.
func (in RuleInput) Validate() error {
	fields := []struct{ name, value string }{
		{"url", in.URL},
		{"frequency", in.Frequency},
		{"getLinks", in.GetLinks},
		{"description", in.Description},
	}
	for _, f := range fields {
		if f.value == "" {
			return requiredError(f.name)
		}
	}
	_, err := ParseFrequency(in.Frequency)
	return err
}

// RuleUpdate carries the mutable rule fields. Empty values take the
// defaults below rather than the rule's previous values.
type RuleUpdate struct {
	Frequency   string `json:"frequency" form:"frequency"`
	Description string `json:"description" form:"description"`
	GetLinks    string `json:"getLinks" form:"getLinks"`
}

const (
	defaultUpdateFrequency = FrequencyWeekly
	defaultUpdateGetLinks  = "false"
)

// WithDefaults returns u with empty fields replaced by their defaults and
// the frequency validated.
func (u RuleUpdate) WithDefaults() (RuleUpdate, error) {
	if u.Frequency == "" {
		u.Frequency = string(defaultUpdateFrequency)
	}
	if u.GetLinks == "" {
		u.GetLinks = defaultUpdateGetLinks
	}
	if _, err := ParseFrequency(u.Frequency); err != nil {
		return RuleUpdate{}, err
	}
	return u, nil
}

// RuleSortKey names the field rule lists are ordered by.
type RuleSortKey string

const (
	RuleSortStartDate RuleSortKey = "startDate"
	RuleSortFrequency RuleSortKey = "frequency"
)

// ParseRuleSortKey accepts the sort_by values allowed for rules. An empty
// value selects startDate.
func ParseRuleSortKey(s string) (RuleSortKey, error) {
	switch RuleSortKey(s) {
	case "", RuleSortStartDate:
		return RuleSortStartDate, nil
	case RuleSortFrequency:
		return RuleSortFrequency, nil
	}
	return "", &ValidationError{
		Field:   "sort_by",
		Message: fmt.Sprintf("'%s' is not a valid choice for sort_by", s),
	}
}

// SortValue returns the value of the field named by key.
func (r Rule) SortValue(key RuleSortKey) string {
	if key == RuleSortFrequency {
		return string(r.Frequency)
	}
	return r.StartDate
}

// SearchText is the text a list query is matched against.
func (r Rule) SearchText() string {
	return r.URL + r.Description
}
