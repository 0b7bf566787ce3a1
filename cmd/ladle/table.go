package main

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ladle/internal/recipes"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableColumn pairs a header with its alignment; numeric columns (price,
// step counts) right-align, text left-aligns.
type tableColumn struct {
	Title string
	Align columnAlignment
}

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	columnConfigs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		align := text.AlignLeft
		if col.Align == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(columnConfigs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// ingredientTable renders the cooking-ingredient rows of a recipe.
func ingredientTable(items []recipes.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item.Kind == recipes.KindProduct {
			continue
		}
		rows = append(rows, []string{
			item.Ingredient.Item,
			item.Ingredient.Amount,
			item.Ingredient.Unit,
		})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]tableColumn{
		{Title: "Ingredient"},
		{Title: "Amount", Align: alignRight},
		{Title: "Unit"},
	}, rows)
}

// productTable renders purchasable items from the ingredient search assistant.
func productTable(items []recipes.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item.Kind != recipes.KindProduct {
			continue
		}
		rows = append(rows, []string{
			item.Product.ProductName,
			formatPrice(item.Product.Price),
			item.Product.ProductAddress,
		})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]tableColumn{
		{Title: "Product"},
		{Title: "Price", Align: alignRight},
		{Title: "Where"},
	}, rows)
}

// formatPrice renders a won amount with thousands separators, e.g. "4,500원".
func formatPrice(price float64) string {
	return humanize.Commaf(price) + "원"
}
