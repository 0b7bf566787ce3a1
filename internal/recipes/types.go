package recipes

import (
	"encoding/json"
	"strings"
)

// Source identifies which assistant produced a recipe.
type Source string

const (
	SourceText             Source = "text"
	SourceVideo            Source = "video"
	SourceIngredientSearch Source = "ingredient_search"
)

// Ingredient is a single entry of a recipe's ingredient list.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Display renders the ingredient as "item amount unit" with empty parts omitted.
func (i Ingredient) Display() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Item, i.Amount, i.Unit} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Product is a purchasable item returned by the ingredient search assistant.
type Product struct {
	ProductName    string  `json:"product_name"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url"`
	ProductAddress string  `json:"product_address"`
}

// ItemKind tags an Item as an ingredient or a product.
type ItemKind string

const (
	KindIngredient ItemKind = "ingredient"
	KindProduct    ItemKind = "product"
)

// Item is one element of a recipe's ingredient list: either a cooking
// ingredient or a shopping product. Exactly one of the two fields matching the
// kind is meaningful.
type Item struct {
	Kind       ItemKind
	Ingredient Ingredient
	Product    Product
}

// IngredientItem wraps an Ingredient as an Item.
func IngredientItem(ing Ingredient) Item {
	return Item{Kind: KindIngredient, Ingredient: ing}
}

// ProductItem wraps a Product as an Item.
func ProductItem(p Product) Item {
	return Item{Kind: KindProduct, Product: p}
}

// MarshalJSON emits the wire shape of the wrapped value, so canonical results
// round-trip through JSON without an envelope.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Kind == KindProduct {
		return json.Marshal(i.Product)
	}
	return json.Marshal(i.Ingredient)
}

// UnmarshalJSON distinguishes products from ingredients by the presence of a
// product_name field. Plain JSON strings become bare ingredients.
func (i *Item) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*i = IngredientItem(Ingredient{Item: asString})
		return nil
	}

	var probe struct {
		ProductName *string `json:"product_name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.ProductName != nil {
		var p Product
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*i = ProductItem(p)
		return nil
	}
	var ing Ingredient
	if err := json.Unmarshal(data, &ing); err != nil {
		return err
	}
	*i = IngredientItem(ing)
	return nil
}

// Recipe is the canonical, render-ready recipe structure all upstream shapes
// normalize into.
type Recipe struct {
	Source      Source   `json:"source"`
	FoodName    string   `json:"food_name"`
	Ingredients []Item   `json:"ingredients"`
	Steps       []string `json:"recipe"`
}

// Result is the canonical payload of a completed agent job.
type Result struct {
	Answer  string   `json:"answer"`
	Recipes []Recipe `json:"recipes"`
}

// Raw carries the untrusted payload embedded in a completed job status. Entries
// in Recipes may be objects, wrapper objects, or JSON-encoded strings; only the
// normalizer should inspect them.
type Raw struct {
	Answer  string            `json:"answer"`
	Recipes []json.RawMessage `json:"recipes"`
}
