package filter

import (
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/shopspring/decimal"
)

// Summary describes a result set for the filter sidebar.
type Summary struct {
	Total      int
	InStock    int
	OutOfStock int
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	// Categories counts results per category id.
	Categories map[string]int
}

// Summarize computes availability counts, the price span and per-category counts.
// Prices are zero for an empty set.
func Summarize(products []catalog.Product) Summary {
	sum := Summary{
		Total:      len(products),
		Categories: make(map[string]int),
	}
	for i, p := range products {
		if p.InStock {
			sum.InStock++
		} else {
			sum.OutOfStock++
		}
		sum.Categories[p.Category]++
		if i == 0 || p.Price.LessThan(sum.MinPrice) {
			sum.MinPrice = p.Price
		}
		if i == 0 || p.Price.GreaterThan(sum.MaxPrice) {
			sum.MaxPrice = p.Price
		}
	}
	return sum
}
