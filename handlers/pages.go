package handlers

import (
	"archive-keeper/models"
	"archive-keeper/registry"
	"archive-keeper/view"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the archived page collection.
type PageHandler struct {
	reg *registry.Registry
}

func (h *PageHandler) renderList(c *fiber.Ctx, status int, q listQuery, sortBy models.PageSortKey) error {
	return c.Status(status).Render(view.PageListTemplate, fiber.Map{
		"Title":  "Archived pages",
		"Pages":  h.reg.ListPages(q.Query, sortBy),
		"Query":  q.Query,
		"SortBy": string(sortBy),
	})
}

func (h *PageHandler) renderPage(c *fiber.Ctx, page models.Page) error {
	return c.Render(view.PageTemplate, fiber.Map{
		"Title": page.URL,
		"Page":  page,
	})
}

// List renders the pages matching the query parameters.
func (h *PageHandler) List(c *fiber.Ctx) error {
	var q listQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse query parameters")
	}
	sortBy, err := models.ParsePageSortKey(q.SortBy)
	if err != nil {
		return err
	}
	return h.renderList(c, fiber.StatusOK, q, sortBy)
}

// ListJSON returns the whole page document, ignoring filters.
func (h *PageHandler) ListJSON(c *fiber.Ctx) error {
	return c.JSON(h.reg.PageDocument())
}

// Create records a page and renders the updated list.
func (h *PageHandler) Create(c *fiber.Ctx) error {
	var in models.PageInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.reg.CreatePage(in); err != nil {
		return err
	}
	return h.renderList(c, fiber.StatusCreated, listQuery{}, models.PageSortDate)
}

// Get renders one page, or returns it as JSON when the id ends in ".json".
func (h *PageHandler) Get(c *fiber.Ctx) error {
	id, asJSON := strings.CutSuffix(c.Params("id"), ".json")
	page, err := h.reg.Page(id)
	if err != nil {
		return err
	}
	if asJSON {
		return c.JSON(page)
	}
	return h.renderPage(c, page)
}

// Update appends tags to a page, replaces its description and renders it.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	var u models.PageUpdate
	if err := parseBody(c, &u); err != nil {
		return err
	}
	page, err := h.reg.UpdatePage(c.Params("id"), u)
	if err != nil {
		return err
	}
	return h.renderPage(c, page)
}
