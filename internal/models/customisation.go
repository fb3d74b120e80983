package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// AddOnItem is a single optional extra within an add-on category.
// It has no identity of its own; it is addressed by position.
type AddOnItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"` // minor currency units
}

// AddOnCategory is a named group of add-on items bounded by a
// selectable quantity range.
type AddOnCategory struct {
	CategoryName string      `json:"categoryName"`
	MinQuantity  int         `json:"minQuantity"`
	MaxQuantity  int         `json:"maxQuantity"`
	Items        []AddOnItem `json:"items"`
}

// AddOnCategories can be stored as a JSON text column
type AddOnCategories []AddOnCategory

// Value converts the categories to a JSON string for storage
func (c AddOnCategories) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

// Scan converts the database value back to categories
func (c *AddOnCategories) Scan(value interface{}) error {
	if value == nil {
		*c = AddOnCategories{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return errors.New("unsupported type for AddOnCategories")
	}
}

// Customisation holds the ordered add-on categories for one menu item
type Customisation struct {
	Categories AddOnCategories `json:"categories"`
}

// ItemCustomisation ties a customisation to a menu item id.
// At most one exists per menu item; it is created lazily on first access.
type ItemCustomisation struct {
	ID            int           `json:"id"`
	Customisation Customisation `json:"customisation"`
}

// ValidateAddOnCategory checks quantity bounds
func ValidateAddOnCategory(cat *AddOnCategory) error {
	if cat.MinQuantity < 0 {
		return errors.New("add-on category min quantity must not be negative")
	}
	if cat.MaxQuantity < cat.MinQuantity {
		return errors.New("add-on category max quantity must be >= min quantity")
	}
	return nil
}
