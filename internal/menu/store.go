package menu

import (
	"fmt"

	"menuforge/internal/models"
)

// Store owns the ordered collection of menu items for one editing
// session. It is not safe for concurrent use; the editing session is
// single-goroutine by contract.
type Store struct {
	items []models.MenuItem
}

// NewStore creates a store seeded with the given items, preserving order
func NewStore(items []models.MenuItem) *Store {
	s := &Store{items: make([]models.MenuItem, len(items))}
	copy(s.items, items)
	return s
}

// Items returns the items in collection order
func (s *Store) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the store
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns a copy of the item with the given id
func (s *Store) Get(id int) (models.MenuItem, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.MenuItem{}, &NotFoundError{ID: id}
	}
	return s.items[i], nil
}

// GroupByCategory groups items by category name, preserving the
// insertion order of each category's first occurrence. Items without a
// category group under the empty-string key.
func (s *Store) GroupByCategory() ([]string, map[string][]models.MenuItem) {
	var order []string
	groups := make(map[string][]models.MenuItem)
	for _, item := range s.items {
		if _, seen := groups[item.Category]; !seen {
			order = append(order, item.Category)
		}
		groups[item.Category] = append(groups[item.Category], item)
	}
	return order, groups
}

// CreateItem allocates a new id, appends a blank item pre-filled with
// the given category and returns it. Ids are max(existing)+1, or 1 for
// an empty collection, and are never reused within a session.
func (s *Store) CreateItem(category string) models.MenuItem {
	item := models.MenuItem{
		ID:            s.NextID(),
		Category:      category,
		CaffeineLevel: models.CaffeineNone,
		SufficientFor: 1,
		Available:     true,
	}
	s.items = append(s.items, item)
	return item
}

// NextID returns the id the next created item would receive
func (s *Store) NextID() int {
	maxID := 0
	for _, item := range s.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

// EditField updates a single field of the item with the given id.
// Spiciness, sweetness and healthiness values are clamped into [0,5]
// before storing. Unknown ids are an error rather than a silent no-op.
func (s *Store) EditField(id int, field string, value interface{}) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	item := &s.items[i]

	switch field {
	case "name":
		item.Name = toString(value)
	case "description":
		item.Description = toString(value)
	case "category":
		item.Category = toString(value)
	case "image":
		item.Image = toString(value)
	case "price":
		item.Price = ParseAmount(value)
	case "spicinessLevel":
		item.SpicinessLevel = models.ClampLevel(toInt(value))
	case "sweetnessLevel":
		item.SweetnessLevel = models.ClampLevel(toInt(value))
	case "healthinessScore":
		item.HealthinessScore = models.ClampLevel(toInt(value))
	case "dietaryPreference":
		item.DietaryPreference = toStringSlice(value)
	case "caffeineLevel":
		item.CaffeineLevel = models.CaffeineLevel(toString(value))
	case "sufficientFor":
		n := toInt(value)
		if n < 1 {
			n = 1
		}
		item.SufficientFor = n
	case "available":
		item.Available = toBool(value)
	default:
		return fmt.Errorf("unknown menu item field %q", field)
	}
	return nil
}

// Delete removes the item with the given id, preserving the order of
// the remaining items.
func (s *Store) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// Replace swaps the whole collection, e.g. after an ingestion run
func (s *Store) Replace(items []models.MenuItem) {
	s.items = make([]models.MenuItem, len(items))
	copy(s.items, items)
}

func (s *Store) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
