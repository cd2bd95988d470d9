package cart

import (
	"sync"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
)

// Cart holds the events a participant intends to register for, one item per event id,
// in the order they were added. It is safe for concurrent use.
type Cart struct {
	mu    sync.RWMutex
	items []*model.CartItem
	fee   int
}

func New(fee int) *Cart {
	return &Cart{fee: fee}
}

// Add inserts the event with an empty roster. Adding an event that is already in the
// cart changes nothing and returns false.
func (c *Cart) Add(event *model.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(event.ID) >= 0 {
		return false
	}
	c.items = append(c.items, &model.CartItem{Event: event, TeamMembers: []model.TeamMember{}})
	return true
}

func (c *Cart) Remove(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(eventID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// SetRoster replaces the roster of the matching item. Unknown ids are ignored.
func (c *Cart) SetRoster(eventID string, members []model.TeamMember) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(eventID)
	if i < 0 {
		return false
	}
	roster := make([]model.TeamMember, len(members))
	copy(roster, members)
	c.items[i].TeamMembers = roster
	return true
}

// ConflictsFor returns the other events in the cart sharing the event's time slot.
// Events in exempt slots never conflict.
func (c *Cart) ConflictsFor(event *model.Event) []*model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conflicts := make([]*model.Event, 0)
	if event.TimeSlot.Exempt() {
		return conflicts
	}
	for _, item := range c.items {
		if item.Event.ID == event.ID {
			continue
		}
		if item.Event.TimeSlot == event.TimeSlot {
			conflicts = append(conflicts, item.Event)
		}
	}
	return conflicts
}

func (c *Cart) HasConflict(event *model.Event) bool {
	return len(c.ConflictsFor(event)) > 0
}

// Total is the flat team fee; it does not depend on the cart contents.
func (c *Cart) Total() int {
	return c.fee
}

func (c *Cart) Contains(eventID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(eventID) >= 0
}

func (c *Cart) Get(eventID string) (model.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(eventID)
	if i < 0 {
		return model.CartItem{}, false
	}
	return cloneItem(c.items[i]), true
}

// Items returns a snapshot; mutating it does not affect the cart.
func (c *Cart) Items() []model.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, cloneItem(item))
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) indexOf(eventID string) int {
	for i, item := range c.items {
		if item.Event.ID == eventID {
			return i
		}
	}
	return -1
}

func cloneItem(item *model.CartItem) model.CartItem {
	members := make([]model.TeamMember, len(item.TeamMembers))
	copy(members, item.TeamMembers)
	return model.CartItem{Event: item.Event, TeamMembers: members}
}
