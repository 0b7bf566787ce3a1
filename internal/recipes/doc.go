// Package recipes defines the canonical recipe model and the normalizer that
// converts heterogeneous agent payloads into it.
//
// Upstream assistants return recipes in inconsistent shapes: the real payload
// may be nested under a wrapper key, encoded as a JSON string, keyed as
// "recipe" or "steps", and ingredients may be plain strings or structured
// objects. Normalize resolves each entry through an explicit shape
// classification and degrades gracefully, reporting every default it applied
// so callers can distinguish complete recipes from best-effort ones.
//
// Treat this package as the single source of truth for the recipe wire shape;
// rendering and storage code must only ever see canonical Recipes.
package recipes
