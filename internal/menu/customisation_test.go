package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuforge/internal/models"
)

func TestGetOrCreateInsertsLazily(t *testing.T) {
	store := NewCustomisationStore(nil)

	entry := store.GetOrCreate(4)
	assert.Equal(t, 4, entry.ID)
	assert.Empty(t, entry.Customisation.Categories)
	assert.Len(t, store.Entries(), 1)

	// second access returns the same entry, no duplicate
	store.GetOrCreate(4)
	assert.Len(t, store.Entries(), 1)
}

func TestAddAndRemoveCategory(t *testing.T) {
	store := NewCustomisationStore(nil)
	store.AddCategory(1)

	entries := store.Entries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Customisation.Categories, 1)

	cat := entries[0].Customisation.Categories[0]
	assert.Equal(t, "New Category", cat.CategoryName)
	assert.Equal(t, 0, cat.MinQuantity)
	assert.Equal(t, 1, cat.MaxQuantity)
	assert.Empty(t, cat.Items)

	require.NoError(t, store.RemoveCategory(1, 0))
	assert.Empty(t, store.Entries()[0].Customisation.Categories)

	err := store.RemoveCategory(1, 0)
	var oor *IndexOutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, "category", oor.Kind)
}

func TestSetCategoryFieldLenientParsing(t *testing.T) {
	store := NewCustomisationStore(nil)
	store.AddCategory(1)

	cases := map[string]int{
		"":      0,
		"12a3":  123,
		"abc":   0,
		"007":   7,
		"12.50": 1250,
		" 4 ":   4,
	}
	for raw, want := range cases {
		require.NoError(t, store.SetCategoryField(1, 0, "minQuantity", raw))
		got := store.Entries()[0].Customisation.Categories[0].MinQuantity
		assert.Equal(t, want, got, "raw input %q", raw)
	}

	require.NoError(t, store.SetCategoryField(1, 0, "categoryName", "  Sauces "))
	assert.Equal(t, "  Sauces ", store.Entries()[0].Customisation.Categories[0].CategoryName,
		"category names are stored unmodified")
}

func TestAddOnItemLifecycle(t *testing.T) {
	store := NewCustomisationStore(nil)
	store.AddCategory(1)

	require.NoError(t, store.AddItem(1, 0))
	items := store.Entries()[0].Customisation.Categories[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, "New Add-On", items[0].Name)
	assert.Equal(t, 0, items[0].Price)

	require.NoError(t, store.EditItemField(1, 0, 0, "name", "Extra Cheese"))
	require.NoError(t, store.EditItemField(1, 0, 0, "price", "150"))
	item := store.Entries()[0].Customisation.Categories[0].Items[0]
	assert.Equal(t, "Extra Cheese", item.Name)
	assert.Equal(t, 150, item.Price)

	require.NoError(t, store.RemoveItem(1, 0, 0))
	assert.Empty(t, store.Entries()[0].Customisation.Categories[0].Items)

	err := store.RemoveItem(1, 0, 5)
	var oor *IndexOutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, "item", oor.Kind)
}

func TestDeleteThenGetOrCreateYieldsFreshEntry(t *testing.T) {
	store := NewCustomisationStore(nil)
	store.AddCategory(9)
	require.NoError(t, store.AddItem(9, 0))

	store.Delete(9)

	entry := store.GetOrCreate(9)
	assert.Empty(t, entry.Customisation.Categories, "deletion removes add-on data, not just the entry")
}

func TestCustomisationStoreSeeding(t *testing.T) {
	seed := []models.ItemCustomisation{
		{ID: 1, Customisation: models.Customisation{Categories: models.AddOnCategories{
			{CategoryName: "Toppings", MinQuantity: 0, MaxQuantity: 3},
		}}},
	}
	store := NewCustomisationStore(seed)

	entry := store.GetOrCreate(1)
	require.Len(t, entry.Customisation.Categories, 1)
	assert.Equal(t, "Toppings", entry.Customisation.Categories[0].CategoryName)
}
