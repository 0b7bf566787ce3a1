package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ladle/internal/recipes"
)

// Title casing is a no-op for Korean text and tidies Latin food names.
var titleCaser = cases.Title(language.Und)

// renderRecipe formats one recipe card: name line, ingredient or product
// table, then numbered steps.
func renderRecipe(recipe recipes.Recipe) string {
	var b strings.Builder

	name := strings.TrimSpace(recipe.FoodName)
	if name == "" {
		name = "(unnamed recipe)"
	}
	b.WriteString(titleCaser.String(name))
	if recipe.Source != "" {
		fmt.Fprintf(&b, " [%s]", recipe.Source)
	}
	b.WriteByte('\n')

	if tableText := renderItems(recipe.Ingredients); tableText != "" {
		b.WriteString(tableText)
		b.WriteByte('\n')
	}

	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	return b.String()
}

// renderItems builds an ingredient table, a product table, or both, depending
// on what the recipe carries.
func renderItems(items []recipes.Item) string {
	var parts []string
	if t := ingredientTable(items); t != "" {
		parts = append(parts, t)
	}
	if t := productTable(items); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n")
}
