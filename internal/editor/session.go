// Package editor implements the menu editing session: it owns the
// in-memory item and customisation stores for the duration of the
// editing screen, tracks unsaved changes and orchestrates save and
// delete against the remote menu API.
package editor

import (
	"context"
	"fmt"

	"menuforge/internal/menu"
	"menuforge/internal/models"
)

// MenuAPI is the remote collaborator the session persists through.
// The server is the source of truth at load time; the session is the
// source of truth while editing.
type MenuAPI interface {
	FetchMenu(ctx context.Context, restaurantID string) (models.MenuPayload, error)
	ReplaceMenu(ctx context.Context, restaurantID string, payload models.MenuPayload) error
}

// SaveError reports a rejected write. Local edits are left intact so
// the user can retry.
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string {
	if e.Message != "" {
		return "save failed: " + e.Message
	}
	return "save failed: " + e.Err.Error()
}

func (e *SaveError) Unwrap() error { return e.Err }

// noSelection marks the session as having no focused item
const noSelection = 0

// Session ties the stores to the editing UI contract. It is owned by
// one editing screen and must not be shared across goroutines.
type Session struct {
	RestaurantID string

	items          *menu.Store
	customisations *menu.CustomisationStore
	api            MenuAPI

	selected   int
	hasChanges bool
}

// NewSession creates an empty session for the given restaurant
func NewSession(restaurantID string, api MenuAPI) *Session {
	return &Session{
		RestaurantID:   restaurantID,
		items:          menu.NewStore(nil),
		customisations: menu.NewCustomisationStore(nil),
		api:            api,
	}
}

// Load seeds both stores from the server, discarding local state
func (s *Session) Load(ctx context.Context) error {
	payload, err := s.api.FetchMenu(ctx, s.RestaurantID)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	s.items.Replace(payload.MenuItems)
	s.customisations.Replace(payload.Customisations)
	s.selected = noSelection
	s.hasChanges = false
	return nil
}

// Items exposes the menu item store
func (s *Session) Items() *menu.Store { return s.items }

// Customisations exposes the customisation store
func (s *Session) Customisations() *menu.CustomisationStore { return s.customisations }

// HasChanges reports whether edits are pending since the last save
func (s *Session) HasChanges() bool { return s.hasChanges }

// SelectItem sets the current focus. It has no side effects on the
// stores and does not mark the session dirty.
func (s *Session) SelectItem(itemID int) error {
	if _, err := s.items.Get(itemID); err != nil {
		return err
	}
	s.selected = itemID
	return nil
}

// SelectedItem returns the focused item, or false when nothing is selected
func (s *Session) SelectedItem() (models.MenuItem, bool) {
	if s.selected == noSelection {
		return models.MenuItem{}, false
	}
	item, err := s.items.Get(s.selected)
	if err != nil {
		return models.MenuItem{}, false
	}
	return item, true
}

// CreateItem adds a blank item in the given category together with its
// empty customisation, selects it and marks the session dirty.
func (s *Session) CreateItem(category string) models.MenuItem {
	item := s.items.CreateItem(category)
	s.customisations.GetOrCreate(item.ID)
	s.selected = item.ID
	s.hasChanges = true
	return item
}

// EditField updates a field on a menu item and marks the session dirty
func (s *Session) EditField(itemID int, field string, value interface{}) error {
	if err := s.items.EditField(itemID, field, value); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// AddCategory appends an add-on category and marks the session dirty
func (s *Session) AddCategory(itemID int) {
	s.customisations.AddCategory(itemID)
	s.hasChanges = true
}

// RemoveCategory removes an add-on category and marks the session dirty
func (s *Session) RemoveCategory(itemID, categoryIndex int) error {
	if err := s.customisations.RemoveCategory(itemID, categoryIndex); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// SetCategoryField edits an add-on category and marks the session dirty
func (s *Session) SetCategoryField(itemID, categoryIndex int, field string, rawValue interface{}) error {
	if err := s.customisations.SetCategoryField(itemID, categoryIndex, field, rawValue); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// AddAddOnItem appends an add-on and marks the session dirty
func (s *Session) AddAddOnItem(itemID, categoryIndex int) error {
	if err := s.customisations.AddItem(itemID, categoryIndex); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// RemoveAddOnItem removes an add-on and marks the session dirty
func (s *Session) RemoveAddOnItem(itemID, categoryIndex, itemIndex int) error {
	if err := s.customisations.RemoveItem(itemID, categoryIndex, itemIndex); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// EditAddOnItemField edits an add-on and marks the session dirty
func (s *Session) EditAddOnItemField(itemID, categoryIndex, itemIndex int, field string, rawValue interface{}) error {
	if err := s.customisations.EditItemField(itemID, categoryIndex, itemIndex, field, rawValue); err != nil {
		return err
	}
	s.hasChanges = true
	return nil
}

// DeleteItem removes the item and its customisation, deselects it if
// focused, and immediately persists the resulting collections. This is
// the one operation not batched with other pending edits: a persist
// failure is surfaced but the local removal is kept, matching the
// save-then-report pattern used elsewhere.
func (s *Session) DeleteItem(ctx context.Context, itemID int) error {
	if err := s.items.Delete(itemID); err != nil {
		return err
	}
	s.customisations.Delete(itemID)
	if s.selected == itemID {
		s.selected = noSelection
	}

	// the removal stands even if the write fails; the caller may
	// re-fetch for stronger consistency
	return s.persist(ctx)
}

// Save submits the entire current item and customisation lists as one
// replace-style request. On success the pending-changes flag clears;
// on failure local edits stay intact and the user can retry.
func (s *Session) Save(ctx context.Context) error {
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.hasChanges = false
	return nil
}

func (s *Session) persist(ctx context.Context) error {
	payload := models.MenuPayload{
		MenuItems:      normalizeItems(s.items.Items()),
		Customisations: s.customisations.Entries(),
	}
	if err := s.api.ReplaceMenu(ctx, s.RestaurantID, payload); err != nil {
		return &SaveError{Message: serverMessage(err), Err: err}
	}
	return nil
}

// normalizeItems coerces every numeric field into its valid range
// before the payload leaves the session.
func normalizeItems(items []models.MenuItem) []models.MenuItem {
	for i := range items {
		items[i].SpicinessLevel = models.ClampLevel(items[i].SpicinessLevel)
		items[i].SweetnessLevel = models.ClampLevel(items[i].SweetnessLevel)
		items[i].HealthinessScore = models.ClampLevel(items[i].HealthinessScore)
		if items[i].Price < 0 {
			items[i].Price = 0
		}
		if items[i].SufficientFor < 1 {
			items[i].SufficientFor = 1
		}
		if !items[i].CaffeineLevel.Valid() {
			items[i].CaffeineLevel = models.CaffeineNone
		}
		if items[i].DietaryPreference == nil {
			items[i].DietaryPreference = models.StringSlice{}
		}
	}
	return items
}

func serverMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
