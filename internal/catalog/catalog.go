package catalog

import (
	"strings"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
)

// Catalog is an immutable, ordered set of events.
type Catalog struct {
	events []*model.Event
	byID   map[string]*model.Event
}

func New(events []*model.Event) *Catalog {
	c := &Catalog{
		events: make([]*model.Event, 0, len(events)),
		byID:   make(map[string]*model.Event, len(events)),
	}
	for _, e := range events {
		if e == nil || e.ID == "" {
			continue
		}
		if _, ok := c.byID[e.ID]; ok {
			continue
		}
		c.events = append(c.events, e)
		c.byID[e.ID] = e
	}
	return c
}

// Default returns the TECHXAURA 2K26 event line-up.
func Default() *Catalog {
	return New(defaultEvents)
}

func (c *Catalog) All() []*model.Event {
	out := make([]*model.Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Catalog) Get(id string) (*model.Event, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Categories lists the filter values accepted by FilterByCategory, "All" first.
func (c *Catalog) Categories() []string {
	return []string{
		"All",
		string(model.CategoryTechnical),
		string(model.CategoryNonTechnical),
		string(model.CategoryBreakout),
	}
}

func (c *Catalog) FilterByCategory(category string) []*model.Event {
	if category == "" || category == "All" {
		return c.All()
	}
	out := make([]*model.Event, 0)
	for _, e := range c.events {
		if string(e.Category) == category {
			out = append(out, e)
		}
	}
	return out
}

// Search matches the query case-insensitively against event names and descriptions.
func (c *Catalog) Search(query string) []*model.Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	out := make([]*model.Event, 0)
	for _, e := range c.events {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}

// Find applies the category filter and then the search query.
func (c *Catalog) Find(category, query string) []*model.Event {
	filtered := New(c.FilterByCategory(category))
	return filtered.Search(query)
}
