package models

import (
	"fmt"
)

// CaffeineLevel describes how much caffeine a menu item contains
type CaffeineLevel string

const (
	CaffeineNone   CaffeineLevel = "none"
	CaffeineMedium CaffeineLevel = "medium"
	CaffeineHigh   CaffeineLevel = "high"
)

// Valid reports whether the level is one of the known values
func (c CaffeineLevel) Valid() bool {
	switch c {
	case CaffeineNone, CaffeineMedium, CaffeineHigh:
		return true
	}
	return false
}

// Level bounds for spiciness, sweetness and healthiness scores
const (
	LevelMin = 0
	LevelMax = 5
)

// MenuItem represents a sellable dish on the menu
type MenuItem struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Category          string        `json:"category"`
	Price             int           `json:"price"` // minor currency units
	Image             string        `json:"image"`
	SpicinessLevel    int           `json:"spicinessLevel"`
	SweetnessLevel    int           `json:"sweetnessLevel"`
	DietaryPreference StringSlice   `json:"dietaryPreference"`
	HealthinessScore  int           `json:"healthinessScore"`
	CaffeineLevel     CaffeineLevel `json:"caffeineLevel"`
	SufficientFor     int           `json:"sufficientFor"`
	Available         bool          `json:"available"`
}

// ClampLevel forces a level value into the [0,5] range
func ClampLevel(v int) int {
	if v < LevelMin {
		return LevelMin
	}
	if v > LevelMax {
		return LevelMax
	}
	return v
}

// ValidateMenuItem validates a menu item before persistence
func ValidateMenuItem(item *MenuItem) error {
	if item.ID < 1 {
		return fmt.Errorf("menu item id must be >= 1, got %d", item.ID)
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item %d: price must not be negative", item.ID)
	}
	if item.SpicinessLevel < LevelMin || item.SpicinessLevel > LevelMax {
		return fmt.Errorf("menu item %d: spiciness level out of range", item.ID)
	}
	if item.SweetnessLevel < LevelMin || item.SweetnessLevel > LevelMax {
		return fmt.Errorf("menu item %d: sweetness level out of range", item.ID)
	}
	if item.HealthinessScore < LevelMin || item.HealthinessScore > LevelMax {
		return fmt.Errorf("menu item %d: healthiness score out of range", item.ID)
	}
	if item.CaffeineLevel != "" && !item.CaffeineLevel.Valid() {
		return fmt.Errorf("menu item %d: unknown caffeine level %q", item.ID, item.CaffeineLevel)
	}
	if item.SufficientFor < 1 {
		return fmt.Errorf("menu item %d: sufficientFor must be >= 1", item.ID)
	}
	return nil
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category string) bool {
	return mi.Category == category
}

// HasDietaryPreference checks if the item carries a dietary tag
func (mi *MenuItem) HasDietaryPreference(pref string) bool {
	for _, p := range mi.DietaryPreference {
		if p == pref {
			return true
		}
	}
	return false
}
