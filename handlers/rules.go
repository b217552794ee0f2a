package handlers

import (
	"archive-keeper/models"
	"archive-keeper/registry"
	"archive-keeper/view"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RuleHandler serves the archiving rule collection.
type RuleHandler struct {
	reg *registry.Registry
}

func (h *RuleHandler) renderList(c *fiber.Ctx, status int, q listQuery, sortBy models.RuleSortKey) error {
	rules := h.reg.ListRules(q.Query, sortBy)
	return c.Status(status).Render(view.RuleListTemplate, fiber.Map{
		"Title":       "Archiving rules",
		"Rules":       rules,
		"Frequencies": models.Frequencies,
		"Query":       q.Query,
		"SortBy":      string(sortBy),
	})
}

func (h *RuleHandler) renderRule(c *fiber.Ctx, rule models.Rule) error {
	return c.Render(view.RuleTemplate, fiber.Map{
		"Title":       rule.URL,
		"Rule":        rule,
		"Frequencies": models.Frequencies,
	})
}

// List renders the rules matching the query parameters.
func (h *RuleHandler) List(c *fiber.Ctx) error {
	var q listQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse query parameters")
	}
	sortBy, err := models.ParseRuleSortKey(q.SortBy)
	if err != nil {
		return err
	}
	return h.renderList(c, fiber.StatusOK, q, sortBy)
}

// ListJSON returns the whole rule document, ignoring filters.
func (h *RuleHandler) ListJSON(c *fiber.Ctx) error {
	return c.JSON(h.reg.RuleDocument())
}

// Create adds a rule and renders the updated list.
func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var in models.RuleInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.reg.CreateRule(in); err != nil {
		return err
	}
	return h.renderList(c, fiber.StatusCreated, listQuery{}, models.RuleSortStartDate)
}

// Get renders one rule, or returns it as JSON when the id ends in ".json".
func (h *RuleHandler) Get(c *fiber.Ctx) error {
	id, asJSON := strings.CutSuffix(c.Params("id"), ".json")
	rule, err := h.reg.Rule(id)
	if err != nil {
		return err
	}
	if asJSON {
		return c.JSON(rule)
	}
	return h.renderRule(c, rule)
}

// Update replaces the mutable fields of a rule and renders it.
func (h *RuleHandler) Update(c *fiber.Ctx) error {
	var u models.RuleUpdate
	if err := parseBody(c, &u); err != nil {
		return err
	}
	rule, err := h.reg.UpdateRule(c.Params("id"), u)
	if err != nil {
		return err
	}
	return h.renderRule(c, rule)
}
