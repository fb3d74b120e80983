package ingest

import (
	"encoding/json"
	"fmt"
)

const structuringSystem = "You are a data extraction engine. You output raw JSON arrays only."

// buildStructuringPrompt instructs the service to convert raw document
// text into the basic item array. The contract is strict: a raw array,
// no surrounding formatting, ids counting up from 1, price 0 when the
// document names none.
func buildStructuringPrompt(text string) string {
	return `Convert the following menu text into a JSON array of menu items.

Rules:
- Output MUST be a raw JSON array. It MUST start with [ and end with ].
- NO markdown fences, NO explanations, NO extra text.
- Each element has exactly these fields:
  {"id": number, "name": "string", "description": "string", "category": "string", "price": number}
- "id" auto-increments starting from 1.
- "price" is a whole number in minor currency units; use 0 when the text gives no price.
- "description" and "category" may be empty strings when the text gives nothing.
- If no menu items can be found, output [].

MENU TEXT:
` + text
}

const enhancementSystem = "You are a culinary data enrichment engine. You output raw JSON arrays only."

// buildEnhancementPrompt instructs the service to append the seven
// descriptive fields to a batch of items while leaving id, name and
// price untouched. The caller validates that preservation afterwards.
func buildEnhancementPrompt(batch []BasicItem) (string, error) {
	encoded, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("encode enhancement batch: %w", err)
	}

	return `Enhance the following JSON array of menu items.

Rules:
- Output MUST be a raw JSON array with exactly the same number of elements, in the same order.
- NO markdown fences, NO explanations, NO extra text.
- Keep "id", "name" and "price" EXACTLY as given. Never change them.
- Keep "description" and "category", improving them only if empty.
- Add these fields to every element:
  "spicinessLevel": integer 0-5
  "sweetnessLevel": integer 0-5
  "dietaryPreference": array of strings (e.g. ["vegetarian","vegan","gluten-free"]; may be empty)
  "healthinessScore": integer 0-5
  "caffeineLevel": one of "none", "medium", "high"
  "sufficientFor": integer >= 1 (how many people one serving feeds)
  "available": boolean, true unless the item is clearly seasonal or discontinued

ITEMS:
` + string(encoded), nil
}
