/*
Package filter implements the facet state and the filter/sort pipeline over a catalog.

A State is always fully populated. Every token parser has an explicit default
branch, so an unrecognized category, price bucket, rating or sort key behaves
exactly like "no constraint" instead of producing an error or an empty page.

	st := filter.Default()
	st.Price = filter.ParsePriceRange("under-10")
	products := filter.Results(cat, "lamp", st)
*/
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bastiangx/shopsearch/pkg/catalog"
)

// Query-string keys of a search deep link.
const (
	KeyQuery    = "q"
	KeyCategory = "category"
	KeyPrice    = "price"
	KeyRating   = "rating"
	KeyInStock  = "inStock"
	KeySort     = "sort"
)

// State is the complete set of facet selections.
type State struct {
	Category string
	Price    PriceRange
	Rating   int
	InStock  bool
	SortBy   SortKey
}

// Default returns the unconstrained state. It is also what "clear filters" resets to.
func Default() State {
	return State{Category: catalog.AllCategory}
}

// Normalize folds out-of-range values into their unconstrained form.
func (s State) Normalize() State {
	if strings.TrimSpace(s.Category) == "" || catalog.IsAll(s.Category) {
		s.Category = catalog.AllCategory
	}
	s.Rating = NormalizeRating(s.Rating)
	if int(s.Price) >= len(priceRanges) {
		s.Price = PriceAll
	}
	if int(s.SortBy) >= len(sortKeys) {
		s.SortBy = SortRelevance
	}
	return s
}

// IsDefault reports whether s constrains nothing and keeps catalog order.
func (s State) IsDefault() bool {
	return s.Normalize() == Default()
}

// Encode builds the deep-link query string for a search. Only non-default
// facets are written, so an unconstrained search is just ?q=...
func Encode(query string, s State) url.Values {
	s = s.Normalize()
	v := url.Values{}
	if query != "" {
		v.Set(KeyQuery, query)
	}
	if !catalog.IsAll(s.Category) {
		v.Set(KeyCategory, s.Category)
	}
	if s.Price != PriceAll {
		v.Set(KeyPrice, s.Price.String())
	}
	if s.Rating > 0 {
		v.Set(KeyRating, strconv.Itoa(s.Rating))
	}
	if s.InStock {
		v.Set(KeyInStock, "true")
	}
	if s.SortBy != SortRelevance {
		v.Set(KeySort, s.SortBy.String())
	}
	return v
}

// Decode reads a deep link back. Absent or malformed keys mean unconstrained.
func Decode(v url.Values) (string, State) {
	s := State{
		Category: v.Get(KeyCategory),
		Price:    ParsePriceRange(v.Get(KeyPrice)),
		Rating:   ParseRating(v.Get(KeyRating)),
		SortBy:   ParseSortKey(v.Get(KeySort)),
	}
	if stock, err := strconv.ParseBool(v.Get(KeyInStock)); err == nil {
		s.InStock = stock
	}
	return v.Get(KeyQuery), s.Normalize()
}
