package recipes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Wrapper keys some assistants nest their real payload under.
const (
	wrapperTextAssistant = "text_based_cooking_assistant_response"
	wrapperVideoExtract  = "extract_recipe_from_youtube_response"
)

// Report records the degradations applied while normalizing a raw payload, so
// callers can tell a fully-specified recipe from a best-effort reconstruction.
type Report struct {
	// Defaulted lists field paths (e.g. "recipes[0].source") that were filled
	// with a default or coerced from a looser shape.
	Defaulted []string `json:"defaulted,omitempty"`
	// Dropped counts entries excluded because they had no usable steps.
	Dropped int `json:"dropped,omitempty"`
	// Fragments holds answer text recovered from nested or plain-text entries.
	Fragments []string `json:"fragments,omitempty"`
}

// Clean reports whether normalization applied no degradations at all.
func (r Report) Clean() bool {
	return len(r.Defaulted) == 0 && r.Dropped == 0 && len(r.Fragments) == 0
}

// entryShape classifies one raw recipe entry. Shapes are resolved explicitly so
// the unknown case is a visible branch, not a fallthrough.
type entryShape int

const (
	entryInvalid entryShape = iota
	entryText
	entryObject
)

// Normalize converts a raw agent payload into the canonical Result. It is pure
// and total: malformed entries degrade to defaults or answer fragments and are
// recorded on the Report, never surfaced as errors.
func Normalize(raw Raw) (Result, Report) {
	result := Result{Answer: raw.Answer, Recipes: []Recipe{}}
	report := Report{}

	for idx, entry := range raw.Recipes {
		normalizeEntry(entry, fmt.Sprintf("recipes[%d]", idx), &result, &report)
	}
	return result, report
}

func normalizeEntry(entry json.RawMessage, path string, result *Result, report *Report) {
	shape, text, obj := classifyEntry(entry)
	switch shape {
	case entryInvalid:
		report.Dropped++
	case entryText:
		addFragment(report, text)
	case entryObject:
		inner := unwrap(obj, report)
		if inner == nil {
			report.Dropped++
			return
		}

		steps := stepsFrom(inner)
		if len(steps) == 0 {
			// Step-less entries are narrative answers, not recipe cards.
			report.Dropped++
			return
		}

		recipe := Recipe{
			Source:      sourceFrom(inner, path, report),
			FoodName:    foodNameFrom(inner, path, report),
			Ingredients: ingredientsFrom(inner, path, report),
			Steps:       steps,
		}
		result.Recipes = append(result.Recipes, recipe)
	}
}

// classifyEntry resolves a raw entry into one of the explicit shapes. JSON
// strings that themselves look like JSON are re-parsed; strings that do not
// parse stay plain text.
func classifyEntry(entry json.RawMessage) (entryShape, string, map[string]any) {
	var value any
	if err := json.Unmarshal(entry, &value); err != nil {
		return entryInvalid, "", nil
	}
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			var nested any
			if err := json.Unmarshal([]byte(trimmed), &nested); err == nil {
				if m, ok := nested.(map[string]any); ok {
					return entryObject, "", m
				}
			}
		}
		return entryText, v, nil
	case map[string]any:
		return entryObject, "", v
	default:
		return entryInvalid, "", nil
	}
}

// unwrap descends through a known wrapper key when present, collecting any
// answer strings found along the way. Returns nil when the wrapped value is
// unusable.
func unwrap(obj map[string]any, report *Report) map[string]any {
	collectAnswer(obj, report)

	for _, key := range []string{wrapperTextAssistant, wrapperVideoExtract} {
		wrapped, ok := obj[key]
		if !ok {
			continue
		}
		switch v := wrapped.(type) {
		case map[string]any:
			collectAnswer(v, report)
			return v
		case string:
			trimmed := strings.TrimSpace(v)
			if strings.HasPrefix(trimmed, "{") {
				var nested map[string]any
				if err := json.Unmarshal([]byte(trimmed), &nested); err == nil {
					collectAnswer(nested, report)
					return nested
				}
			}
			addFragment(report, v)
			return nil
		default:
			return nil
		}
	}
	return obj
}

func collectAnswer(obj map[string]any, report *Report) {
	if answer, ok := obj["answer"].(string); ok {
		addFragment(report, answer)
	}
}

func addFragment(report *Report, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	report.Fragments = append(report.Fragments, text)
}

// stepsFrom reads cooking steps from the "recipe" field, falling back to
// "steps". Only string elements count; anything else is ignored.
func stepsFrom(obj map[string]any) []string {
	for _, key := range []string{"recipe", "steps"} {
		seq, ok := obj[key].([]any)
		if !ok {
			continue
		}
		steps := make([]string, 0, len(seq))
		for _, elem := range seq {
			if s, ok := elem.(string); ok {
				steps = append(steps, s)
			}
		}
		return steps
	}
	return nil
}

func sourceFrom(obj map[string]any, path string, report *Report) Source {
	if s, ok := obj["source"].(string); ok && strings.TrimSpace(s) != "" {
		return Source(s)
	}
	report.Defaulted = append(report.Defaulted, path+".source")
	return SourceText
}

func foodNameFrom(obj map[string]any, path string, report *Report) string {
	if name, ok := obj["food_name"].(string); ok && strings.TrimSpace(name) != "" {
		return name
	}
	report.Defaulted = append(report.Defaulted, path+".food_name")
	if title, ok := obj["title"].(string); ok {
		return title
	}
	return ""
}

func ingredientsFrom(obj map[string]any, path string, report *Report) []Item {
	seq, ok := obj["ingredients"].([]any)
	if !ok {
		return []Item{}
	}
	items := make([]Item, 0, len(seq))
	for idx, elem := range seq {
		switch v := elem.(type) {
		case string:
			report.Defaulted = append(report.Defaulted, fmt.Sprintf("%s.ingredients[%d]", path, idx))
			items = append(items, IngredientItem(Ingredient{Item: v}))
		case map[string]any:
			items = append(items, itemFromMap(v))
		default:
			report.Defaulted = append(report.Defaulted, fmt.Sprintf("%s.ingredients[%d]", path, idx))
		}
	}
	return items
}

func itemFromMap(m map[string]any) Item {
	if _, ok := m["product_name"]; ok {
		return ProductItem(Product{
			ProductName:    stringField(m, "product_name"),
			Price:          floatField(m, "price"),
			ImageURL:       stringField(m, "image_url"),
			ProductAddress: stringField(m, "product_address"),
		})
	}
	return IngredientItem(Ingredient{
		Item:   stringField(m, "item"),
		Amount: stringField(m, "amount"),
		Unit:   stringField(m, "unit"),
	})
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
