package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuforge/internal/models"
)

func TestParseBasicItemsPlainArray(t *testing.T) {
	items, err := parseBasicItems(`[
		{"id":1,"name":"Margherita Pizza","description":"","category":"Pizza","price":25},
		{"id":2,"name":"Coke","price":8}
	]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, BasicItem{ID: 1, Name: "Margherita Pizza", Category: "Pizza", Price: 25}, items[0])
	assert.Equal(t, BasicItem{ID: 2, Name: "Coke", Price: 8}, items[1])
}

func TestParseBasicItemsStripsFencesAndProse(t *testing.T) {
	items, err := parseBasicItems("```json\n[{\"id\":1,\"name\":\"Dal\",\"price\":40}]\n```")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dal", items[0].Name)

	items, err = parseBasicItems(`Here is the menu: [{"name":"Naan"}] hope that helps`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Naan", items[0].Name)
	assert.Equal(t, 0, items[0].Price, "missing price defaults to 0")
	assert.Equal(t, 1, items[0].ID, "ids are reassigned from 1")
}

func TestParseBasicItemsRejectsGarbage(t *testing.T) {
	for _, response := range []string{"", "I could not find a menu.", `{"items": []}`, "[{broken"} {
		_, err := parseBasicItems(response)
		var parseErr *StructuringParseError
		assert.True(t, errors.As(err, &parseErr), "response %q", response)
	}
}

func TestParseEnhancedBatchPreservesAndNormalizes(t *testing.T) {
	input := []BasicItem{{ID: 1, Name: "Coke", Price: 8}}
	items, err := parseEnhancedBatch(1, input, `[{
		"id":1,"name":"Coke","description":"Chilled cola","category":"Drinks","price":8,
		"spicinessLevel":9,"sweetnessLevel":-2,"dietaryPreference":["vegan"],
		"healthinessScore":1,"caffeineLevel":"Medium","sufficientFor":0
	}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Coke", got.Name)
	assert.Equal(t, 8, got.Price)
	assert.Equal(t, "Chilled cola", got.Description)
	assert.Equal(t, 5, got.SpicinessLevel, "levels clamp into [0,5]")
	assert.Equal(t, 0, got.SweetnessLevel)
	assert.Equal(t, models.CaffeineMedium, got.CaffeineLevel)
	assert.Equal(t, 1, got.SufficientFor)
	assert.True(t, got.Available, "availability defaults to true")
	assert.Equal(t, models.StringSlice{"vegan"}, got.DietaryPreference)
}

func TestParseEnhancedBatchIntegrity(t *testing.T) {
	input := []BasicItem{
		{ID: 1, Name: "Dal", Price: 40},
		{ID: 2, Name: "Naan", Price: 10},
		{ID: 3, Name: "Lassi", Price: 15},
	}

	// price changed at position 2
	_, err := parseEnhancedBatch(2, input, `[
		{"id":1,"name":"Dal","price":40},
		{"id":2,"name":"Naan","price":10},
		{"id":3,"name":"Lassi","price":99}
	]`)
	var integrity *EnhancementIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, 2, integrity.Batch)
	assert.Equal(t, 2, integrity.Position)
	assert.Equal(t, "price", integrity.Field)

	// renamed item at position 0
	_, err = parseEnhancedBatch(1, input, `[
		{"id":1,"name":"Dhal","price":40},
		{"id":2,"name":"Naan","price":10},
		{"id":3,"name":"Lassi","price":15}
	]`)
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "name", integrity.Field)

	// dropped item
	_, err = parseEnhancedBatch(1, input, `[
		{"id":1,"name":"Dal","price":40}
	]`)
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "length", integrity.Field)
}

func TestSplitBatches(t *testing.T) {
	batchOf := func(n int) []BasicItem {
		items := make([]BasicItem, n)
		for i := range items {
			items[i].ID = i + 1
		}
		return items
	}

	cases := []struct{ n, first, second int }{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 1},
		{5, 2, 3},
		{8, 4, 4},
	}
	for _, tc := range cases {
		first, second := splitBatches(batchOf(tc.n))
		assert.Len(t, first, tc.first, "n=%d", tc.n)
		assert.Len(t, second, tc.second, "n=%d", tc.n)
		if tc.n > 0 {
			// contiguity: second batch continues where the first ended
			all := append(append([]BasicItem{}, first...), second...)
			for i, item := range all {
				assert.Equal(t, i+1, item.ID)
			}
		}
	}
}
