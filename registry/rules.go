package registry

import (
	"fmt"

	"archive-keeper/models"
)

// Rule returns the rule with the given id.
func (r *Registry) Rule(id string) (models.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules.Rules[id]
	if !ok {
		return models.Rule{}, &models.NotFoundError{Kind: "rule", ID: id}
	}
	return rule, nil
}

// CreateRule validates in, stores a new rule under a fresh identifier and
// returns it.
func (r *Registry) CreateRule(in models.RuleInput) (models.Rule, error) {
	if err := in.Validate(); err != nil {
		return models.Rule{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshID(func(id string) bool {
		_, ok := r.rules.Rules[id]
		return ok
	})
	if err != nil {
		return models.Rule{}, fmt.Errorf("create rule: %w", err)
	}

	rule := models.Rule{
		LinkedID:    "rule/" + id,
		Type:        models.RuleType,
		ID:          id,
		URL:         in.URL,
		Frequency:   models.Frequency(in.Frequency),
		Description: in.Description,
		GetLinks:    in.GetLinks,
		StartDate:   models.FormatTimestamp(r.now()),
	}
	r.rules.Rules[id] = rule
	return rule, nil
}

// UpdateRule replaces the frequency, description and getLinks of a rule.
// Fields left empty in u take their defaults, not the previous values.
func (r *Registry) UpdateRule(id string, u models.RuleUpdate) (models.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules.Rules[id]
	if !ok {
		return models.Rule{}, &models.NotFoundError{Kind: "rule", ID: id}
	}
	u, err := u.WithDefaults()
	if err != nil {
		return models.Rule{}, err
	}
	rule.Frequency = models.Frequency(u.Frequency)
	rule.Description = u.Description
	rule.GetLinks = u.GetLinks
	r.rules.Rules[id] = rule
	return rule, nil
}
