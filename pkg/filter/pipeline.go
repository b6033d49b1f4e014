package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bastiangx/shopsearch/pkg/catalog"
)

// textFields are the product fields the free-text query is matched against.
const textFields = catalog.FieldName | catalog.FieldDescription | catalog.FieldCategory

type predicate func(p *catalog.Product) bool

// Quick returns the matching products in catalog order, without sorting.
// The header's instant results use it.
func Quick(cat *catalog.Catalog, query string, s State) []catalog.Product {
	return apply(cat, query, s.Normalize(), false)
}

// Results returns the matching products ordered by s.SortBy.
func Results(cat *catalog.Catalog, query string, s State) []catalog.Product {
	return apply(cat, query, s.Normalize(), true)
}

func apply(cat *catalog.Catalog, query string, s State, sorted bool) []catalog.Product {
	var products []catalog.Product
	if strings.TrimSpace(query) != "" {
		products = cat.Search(strings.ToLower(query), textFields, 0)
	} else {
		products = cat.Products()
	}

	preds := predicates(cat, s)
	out := products[:0]
	for i := range products {
		if matchAll(&products[i], preds) {
			out = append(out, products[i])
		}
	}
	if sorted {
		sortInPlace(out, s.SortBy)
	}
	return out
}

// predicates returns only the checks that actually constrain something.
func predicates(cat *catalog.Catalog, s State) []predicate {
	var preds []predicate
	if !catalog.IsAll(s.Category) && cat.HasCategory(s.Category) {
		category := s.Category
		preds = append(preds, func(p *catalog.Product) bool { return p.Category == category })
	}
	if s.Price != PriceAll {
		bucket := s.Price
		preds = append(preds, func(p *catalog.Product) bool { return bucket.Contains(p.Price) })
	}
	if s.Rating > 0 {
		threshold := float64(s.Rating)
		preds = append(preds, func(p *catalog.Product) bool { return p.Rating >= threshold })
	}
	if s.InStock {
		preds = append(preds, func(p *catalog.Product) bool { return p.InStock })
	}
	return preds
}

func matchAll(p *catalog.Product, preds []predicate) bool {
	for _, keep := range preds {
		if !keep(p) {
			return false
		}
	}
	return true
}

// Sort returns a copy of products ordered by key. Ties keep their input order.
func Sort(products []catalog.Product, key SortKey) []catalog.Product {
	out := append([]catalog.Product(nil), products...)
	sortInPlace(out, key)
	return out
}

func sortInPlace(products []catalog.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return newRank(a) - newRank(b)
		})
	default:
		// relevance is catalog order
	}
}

func newRank(p catalog.Product) int {
	if p.IsNew {
		return 0
	}
	return 1
}
