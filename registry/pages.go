package registry

import (
	"fmt"

	"archive-keeper/models"
)

// Page returns the page with the given id.
func (r *Registry) Page(id string) (models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages.Pages[id]
	if !ok {
		return models.Page{}, &models.NotFoundError{Kind: "page", ID: id}
	}
	return page.Clone(), nil
}

// CreatePage validates in, stores a new page dated now and returns it.
func (r *Registry) CreatePage(in models.PageInput) (models.Page, error) {
	if err := in.Validate(); err != nil {
		return models.Page{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshID(func(id string) bool {
		_, ok := r.pages.Pages[id]
		return ok
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("create page: %w", err)
	}

	page := models.Page{
		LinkedID:    "page/" + id,
		Type:        models.PageType,
		ID:          id,
		URL:         in.URL,
		Date:        models.FormatTimestamp(r.now()),
		Tags:        append([]string{}, models.SplitTags(in.Tags)...),
		Description: in.Description,
	}
	r.pages.Pages[id] = page
	return page.Clone(), nil
}

// UpdatePage appends the tags in u to the page and replaces its description.
func (r *Registry) UpdatePage(id string, u models.PageUpdate) (models.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages.Pages[id]
	if !ok {
		return models.Page{}, &models.NotFoundError{Kind: "page", ID: id}
	}
	page = page.Clone()
	page.Tags = append(page.Tags, models.SplitTags(u.Tags)...)
	page.Description = u.Description
	r.pages.Pages[id] = page
	return page.Clone(), nil
}
