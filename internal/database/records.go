package database

import (
	"github.com/jinzhu/gorm"

	"menuforge/internal/models"
)

// MenuItemRecord is the stored form of a menu item. ItemID is the
// editor-visible id, scoped to a restaurant; the gorm primary key is
// internal only.
type MenuItemRecord struct {
	gorm.Model
	RestaurantID      string `gorm:"index"`
	ItemID            int
	Name              string
	Description       string
	Category          string
	Price             int
	Image             string
	SpicinessLevel    int
	SweetnessLevel    int
	DietaryPreference models.StringSlice `gorm:"type:text"`
	HealthinessScore  int
	CaffeineLevel     string
	SufficientFor     int
	Available         bool
	Position          int // collection order within the restaurant
}

// TableName sets the table name for MenuItemRecord
func (MenuItemRecord) TableName() string {
	return "menu_items"
}

// CustomisationRecord is the stored form of an item customisation.
// Categories are kept as a JSON text column; their internal ordering
// matters to the editor and survives the round trip that way.
type CustomisationRecord struct {
	gorm.Model
	RestaurantID string `gorm:"index"`
	ItemID       int
	Categories   models.AddOnCategories `gorm:"type:text"`
	Position     int
}

// TableName sets the table name for CustomisationRecord
func (CustomisationRecord) TableName() string {
	return "item_customisations"
}

func recordFromItem(restaurantID string, position int, item models.MenuItem) MenuItemRecord {
	return MenuItemRecord{
		RestaurantID:      restaurantID,
		ItemID:            item.ID,
		Name:              item.Name,
		Description:       item.Description,
		Category:          item.Category,
		Price:             item.Price,
		Image:             item.Image,
		SpicinessLevel:    item.SpicinessLevel,
		SweetnessLevel:    item.SweetnessLevel,
		DietaryPreference: item.DietaryPreference,
		HealthinessScore:  item.HealthinessScore,
		CaffeineLevel:     string(item.CaffeineLevel),
		SufficientFor:     item.SufficientFor,
		Available:         item.Available,
		Position:          position,
	}
}

func (r *MenuItemRecord) toItem() models.MenuItem {
	return models.MenuItem{
		ID:                r.ItemID,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Price:             r.Price,
		Image:             r.Image,
		SpicinessLevel:    r.SpicinessLevel,
		SweetnessLevel:    r.SweetnessLevel,
		DietaryPreference: r.DietaryPreference,
		HealthinessScore:  r.HealthinessScore,
		CaffeineLevel:     models.CaffeineLevel(r.CaffeineLevel),
		SufficientFor:     r.SufficientFor,
		Available:         r.Available,
	}
}

func recordFromCustomisation(restaurantID string, position int, c models.ItemCustomisation) CustomisationRecord {
	return CustomisationRecord{
		RestaurantID: restaurantID,
		ItemID:       c.ID,
		Categories:   c.Customisation.Categories,
		Position:     position,
	}
}

func (r *CustomisationRecord) toCustomisation() models.ItemCustomisation {
	cats := r.Categories
	if cats == nil {
		cats = models.AddOnCategories{}
	}
	return models.ItemCustomisation{
		ID:            r.ItemID,
		Customisation: models.Customisation{Categories: cats},
	}
}
