package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"menuforge/internal/models"
)

// BasicItem is the first-stage structuring result: identity, naming
// and price only. The enhancement stage appends the descriptive fields.
type BasicItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
}

// wire shapes tolerate the sloppiness generation services produce:
// fractional or missing numbers must not kill a parse the integrity
// check would catch anyway.

type basicWire struct {
	ID          *float64 `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
}

type enhancedWire struct {
	basicWire
	SpicinessLevel    *float64 `json:"spicinessLevel"`
	SweetnessLevel    *float64 `json:"sweetnessLevel"`
	DietaryPreference []string `json:"dietaryPreference"`
	HealthinessScore  *float64 `json:"healthinessScore"`
	CaffeineLevel     string   `json:"caffeineLevel"`
	SufficientFor     *float64 `json:"sufficientFor"`
	Available         *bool    `json:"available"`
}

// parseBasicItems defensively parses the structuring response. Ids are
// reassigned sequentially from 1 and missing prices default to 0.
func parseBasicItems(response string) ([]BasicItem, error) {
	raw, err := extractArray(response)
	if err != nil {
		return nil, &StructuringParseError{Cause: err}
	}

	var wire []basicWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, &StructuringParseError{Cause: err}
	}

	items := make([]BasicItem, len(wire))
	for i, w := range wire {
		items[i] = BasicItem{
			ID:          i + 1,
			Name:        strings.TrimSpace(w.Name),
			Description: strings.TrimSpace(w.Description),
			Category:    strings.TrimSpace(w.Category),
			Price:       numOrZero(w.Price),
		}
	}
	return items, nil
}

// parseEnhancedBatch parses one enhancement response and verifies that
// id, name and price of every returned item exactly match the input
// item at the same position.
func parseEnhancedBatch(batch int, input []BasicItem, response string) ([]models.MenuItem, error) {
	raw, err := extractArray(response)
	if err != nil {
		return nil, &StructuringParseError{Cause: err}
	}

	var wire []enhancedWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, &StructuringParseError{Cause: err}
	}

	if len(wire) != len(input) {
		return nil, &EnhancementIntegrityError{
			Batch: batch, Position: min(len(wire), len(input)), Field: "length",
			Want: fmt.Sprint(len(input)), Got: fmt.Sprint(len(wire)),
		}
	}

	items := make([]models.MenuItem, len(wire))
	for i, w := range wire {
		in := input[i]
		switch {
		case numOrZero(w.ID) != in.ID:
			return nil, &EnhancementIntegrityError{Batch: batch, Position: i, Field: "id",
				Want: fmt.Sprint(in.ID), Got: fmt.Sprint(numOrZero(w.ID))}
		case w.Name != in.Name:
			return nil, &EnhancementIntegrityError{Batch: batch, Position: i, Field: "name",
				Want: fmt.Sprintf("%q", in.Name), Got: fmt.Sprintf("%q", w.Name)}
		case numOrZero(w.Price) != in.Price:
			return nil, &EnhancementIntegrityError{Batch: batch, Position: i, Field: "price",
				Want: fmt.Sprint(in.Price), Got: fmt.Sprint(numOrZero(w.Price))}
		}

		items[i] = models.MenuItem{
			ID:                in.ID,
			Name:              in.Name,
			Description:       pick(w.Description, in.Description),
			Category:          pick(w.Category, in.Category),
			Price:             in.Price,
			SpicinessLevel:    models.ClampLevel(numOrZero(w.SpicinessLevel)),
			SweetnessLevel:    models.ClampLevel(numOrZero(w.SweetnessLevel)),
			DietaryPreference: dietaryOrEmpty(w.DietaryPreference),
			HealthinessScore:  models.ClampLevel(numOrZero(w.HealthinessScore)),
			CaffeineLevel:     caffeineOrNone(w.CaffeineLevel),
			SufficientFor:     atLeastOne(numOrZero(w.SufficientFor)),
			Available:         w.Available == nil || *w.Available,
		}
	}
	return items, nil
}

// extractArray strips markdown fences and any prose surrounding the
// JSON array the service was told to emit.
func extractArray(response string) (string, error) {
	text := strings.TrimSpace(response)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON array in response")
	}
	return text[start : end+1], nil
}

func numOrZero(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

func pick(preferred, fallback string) string {
	if s := strings.TrimSpace(preferred); s != "" {
		return s
	}
	return fallback
}

func caffeineOrNone(raw string) models.CaffeineLevel {
	level := models.CaffeineLevel(strings.ToLower(strings.TrimSpace(raw)))
	if level.Valid() {
		return level
	}
	return models.CaffeineNone
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func dietaryOrEmpty(prefs []string) models.StringSlice {
	if prefs == nil {
		return models.StringSlice{}
	}
	return models.StringSlice(prefs)
}
