package menu

import (
	"fmt"

	"menuforge/internal/models"
)

// Defaults used when the editor appends new entries
const (
	defaultCategoryName = "New Category"
	defaultAddOnName    = "New Add-On"
)

// CustomisationStore owns the per-item add-on structure for one
// editing session. Entries are kept in insertion order so the saved
// payload is stable across edits.
type CustomisationStore struct {
	entries []models.ItemCustomisation
}

// NewCustomisationStore creates a store seeded with existing entries
func NewCustomisationStore(entries []models.ItemCustomisation) *CustomisationStore {
	s := &CustomisationStore{entries: make([]models.ItemCustomisation, len(entries))}
	copy(s.entries, entries)
	return s
}

// Entries returns all customisations in insertion order
func (s *CustomisationStore) Entries() []models.ItemCustomisation {
	out := make([]models.ItemCustomisation, len(s.entries))
	copy(out, s.entries)
	return out
}

// GetOrCreate returns the customisation for the given item id,
// inserting a fresh empty one if none exists yet.
func (s *CustomisationStore) GetOrCreate(itemID int) models.ItemCustomisation {
	if i := s.indexOf(itemID); i >= 0 {
		return s.entries[i]
	}
	entry := models.ItemCustomisation{
		ID:            itemID,
		Customisation: models.Customisation{Categories: models.AddOnCategories{}},
	}
	s.entries = append(s.entries, entry)
	return entry
}

// AddCategory appends a new add-on category to the item's customisation
func (s *CustomisationStore) AddCategory(itemID int) {
	i := s.ensure(itemID)
	s.entries[i].Customisation.Categories = append(s.entries[i].Customisation.Categories,
		models.AddOnCategory{
			CategoryName: defaultCategoryName,
			MinQuantity:  0,
			MaxQuantity:  1,
			Items:        []models.AddOnItem{},
		})
}

// RemoveCategory removes the category at the given position
func (s *CustomisationStore) RemoveCategory(itemID, categoryIndex int) error {
	i := s.ensure(itemID)
	cats := s.entries[i].Customisation.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return &IndexOutOfRangeError{Kind: "category", Index: categoryIndex, Len: len(cats)}
	}
	s.entries[i].Customisation.Categories = append(cats[:categoryIndex], cats[categoryIndex+1:]...)
	return nil
}

// SetCategoryField updates one field of a category. Quantity fields use
// the lenient digit-extraction parse so partial numeric input during
// typing never fails; the name field stores the raw string unmodified.
func (s *CustomisationStore) SetCategoryField(itemID, categoryIndex int, field string, rawValue interface{}) error {
	i := s.ensure(itemID)
	cats := s.entries[i].Customisation.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return &IndexOutOfRangeError{Kind: "category", Index: categoryIndex, Len: len(cats)}
	}
	cat := &s.entries[i].Customisation.Categories[categoryIndex]

	switch field {
	case "categoryName":
		cat.CategoryName = toString(rawValue)
	case "minQuantity":
		cat.MinQuantity = ParseAmount(rawValue)
	case "maxQuantity":
		cat.MaxQuantity = ParseAmount(rawValue)
	default:
		return fmt.Errorf("unknown add-on category field %q", field)
	}
	return nil
}

// AddItem appends a new add-on to the category's item list
func (s *CustomisationStore) AddItem(itemID, categoryIndex int) error {
	i := s.ensure(itemID)
	cats := s.entries[i].Customisation.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return &IndexOutOfRangeError{Kind: "category", Index: categoryIndex, Len: len(cats)}
	}
	cat := &s.entries[i].Customisation.Categories[categoryIndex]
	cat.Items = append(cat.Items, models.AddOnItem{Name: defaultAddOnName, Price: 0})
	return nil
}

// RemoveItem removes the add-on at the given position
func (s *CustomisationStore) RemoveItem(itemID, categoryIndex, itemIndex int) error {
	i := s.ensure(itemID)
	cats := s.entries[i].Customisation.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return &IndexOutOfRangeError{Kind: "category", Index: categoryIndex, Len: len(cats)}
	}
	cat := &s.entries[i].Customisation.Categories[categoryIndex]
	if itemIndex < 0 || itemIndex >= len(cat.Items) {
		return &IndexOutOfRangeError{Kind: "item", Index: itemIndex, Len: len(cat.Items)}
	}
	cat.Items = append(cat.Items[:itemIndex], cat.Items[itemIndex+1:]...)
	return nil
}

// EditItemField updates one field of an add-on item. Price uses the
// same digit-extraction parse-or-zero policy as quantities.
func (s *CustomisationStore) EditItemField(itemID, categoryIndex, itemIndex int, field string, rawValue interface{}) error {
	i := s.ensure(itemID)
	cats := s.entries[i].Customisation.Categories
	if categoryIndex < 0 || categoryIndex >= len(cats) {
		return &IndexOutOfRangeError{Kind: "category", Index: categoryIndex, Len: len(cats)}
	}
	cat := &s.entries[i].Customisation.Categories[categoryIndex]
	if itemIndex < 0 || itemIndex >= len(cat.Items) {
		return &IndexOutOfRangeError{Kind: "item", Index: itemIndex, Len: len(cat.Items)}
	}

	switch field {
	case "name":
		cat.Items[itemIndex].Name = toString(rawValue)
	case "price":
		cat.Items[itemIndex].Price = ParseAmount(rawValue)
	default:
		return fmt.Errorf("unknown add-on item field %q", field)
	}
	return nil
}

// Delete removes the customisation for the given item id. Missing
// entries are fine: an item edited without add-ons has none.
func (s *CustomisationStore) Delete(itemID int) {
	if i := s.indexOf(itemID); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
}

// Replace swaps the whole collection
func (s *CustomisationStore) Replace(entries []models.ItemCustomisation) {
	s.entries = make([]models.ItemCustomisation, len(entries))
	copy(s.entries, entries)
}

// ensure returns the index for the item id, creating the entry if needed
func (s *CustomisationStore) ensure(itemID int) int {
	if i := s.indexOf(itemID); i >= 0 {
		return i
	}
	s.GetOrCreate(itemID)
	return len(s.entries) - 1
}

func (s *CustomisationStore) indexOf(itemID int) int {
	for i, e := range s.entries {
		if e.ID == itemID {
			return i
		}
	}
	return -1
}
