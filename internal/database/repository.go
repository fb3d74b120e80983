package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"menuforge/internal/models"
)

// MenuRepository persists restaurant menus. Writes are replace-style:
// the stored menu always mirrors the last full payload written.
type MenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a repository over the given connection
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// FetchMenu loads a restaurant's full menu in stored order
func (r *MenuRepository) FetchMenu(ctx context.Context, restaurantID string) (models.MenuPayload, error) {
	payload := models.MenuPayload{
		MenuItems:      []models.MenuItem{},
		Customisations: []models.ItemCustomisation{},
	}

	var itemRecords []MenuItemRecord
	if err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("position asc").Find(&itemRecords).Error; err != nil {
		return payload, fmt.Errorf("fetch menu items: %w", err)
	}
	for i := range itemRecords {
		payload.MenuItems = append(payload.MenuItems, itemRecords[i].toItem())
	}

	var custRecords []CustomisationRecord
	if err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("position asc").Find(&custRecords).Error; err != nil {
		return payload, fmt.Errorf("fetch customisations: %w", err)
	}
	for i := range custRecords {
		payload.Customisations = append(payload.Customisations, custRecords[i].toCustomisation())
	}

	return payload, nil
}

// ReplaceMenu atomically swaps a restaurant's menu for the payload:
// delete-all plus insert inside one transaction, so a failed write
// leaves the previous menu intact.
func (r *MenuRepository) ReplaceMenu(ctx context.Context, restaurantID string, payload models.MenuPayload) error {
	for i := range payload.MenuItems {
		if err := models.ValidateMenuItem(&payload.MenuItems[i]); err != nil {
			return err
		}
	}
	for i := range payload.Customisations {
		for j := range payload.Customisations[i].Customisation.Categories {
			if err := models.ValidateAddOnCategory(&payload.Customisations[i].Customisation.Categories[j]); err != nil {
				return fmt.Errorf("customisation %d: %w", payload.Customisations[i].ID, err)
			}
		}
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	if err := tx.Where("restaurant_id = ?", restaurantID).
		Delete(&MenuItemRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("clear menu items: %w", err)
	}
	if err := tx.Where("restaurant_id = ?", restaurantID).
		Delete(&CustomisationRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("clear customisations: %w", err)
	}

	for i, item := range payload.MenuItems {
		record := recordFromItem(restaurantID, i, item)
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("store menu item %d: %w", item.ID, err)
		}
	}
	for i, cust := range payload.Customisations {
		record := recordFromCustomisation(restaurantID, i, cust)
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("store customisation %d: %w", cust.ID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit menu replace: %w", err)
	}
	return nil
}
