/*
Package server implements msgpack IPC for storefront search.

Clients write a stream of msgpack maps to stdin and read one msgpack map per
request from stdout. Messages are processed in order, synchronously, with the
time spent included in each response. On start the server writes a ready
status before reading anything.

# IPC

Every request names an op and may carry an id, which is echoed back. Requests
without one are given a random uuid so responses can still be correlated.

Suggestions for the live search box:

	{"id": "req_001", "op": "suggest", "q": "lam"}
	{"id": "req_001", "s": [{"k": "product", "w": "LED Desk Lamp", "cat": "home"}], "c": 1, "t": 41}

Filtered products, either the quick dropdown ("quick": true keeps catalog
order) or the full results page (sorted by the "sort" facet):

	{"id": "req_002", "op": "search", "q": "lamp", "f": {"price": "25-50", "stock": true, "sort": "price-low"}}
	{"id": "req_002", "p": [{"id": "p-01", "n": "LED Desk Lamp", "p": "34.99", ...}], "c": 1, "t": 63}

Unknown facet values never fail a request; they behave as "no constraint".

The taxonomy with per-category product counts, and a liveness probe:

	{"id": "req_003", "op": "categories"}
	{"id": "req_004", "op": "health"}

Errors carry a message and an HTTP-like status code:

	{"id": "req_005", "e": "unknown operation: rank", "c": 400}

msgpack keeps messages small and cheap to parse, which matters when a
client fires a request per settled keystroke.
*/
package server

import (
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
)

// Operations understood by the server.
const (
	OpSuggest    = "suggest"
	OpSearch     = "search"
	OpCategories = "categories"
	OpHealth     = "health"
)

// Request is the envelope of every incoming message. Fields not used by Op are ignored.
type Request struct {
	ID      string        `msgpack:"id"`
	Op      string        `msgpack:"op"`
	Query   string        `msgpack:"q,omitempty"`
	Filters *FilterParams `msgpack:"f,omitempty"`
	Quick   bool          `msgpack:"quick,omitempty"`
	Limit   int           `msgpack:"l,omitempty"`
}

// FilterParams are facet selections as raw tokens.
type FilterParams struct {
	Category string `msgpack:"category,omitempty"`
	Price    string `msgpack:"price,omitempty"`
	Rating   int    `msgpack:"rating,omitempty"`
	InStock  bool   `msgpack:"stock,omitempty"`
	Sort     string `msgpack:"sort,omitempty"`
}

// State parses f into a filter state; a nil f is the default state.
func (f *FilterParams) State() filter.State {
	if f == nil {
		return filter.Default()
	}
	return filter.State{
		Category: f.Category,
		Price:    filter.ParsePriceRange(f.Price),
		Rating:   f.Rating,
		InStock:  f.InStock,
		SortBy:   filter.ParseSortKey(f.Sort),
	}.Normalize()
}

// SuggestionItem is one suggestion on the wire.
type SuggestionItem struct {
	Kind     string `msgpack:"k"`
	Text     string `msgpack:"w"`
	Category string `msgpack:"cat,omitempty"`
	Count    int    `msgpack:"n,omitempty"`
}

// SuggestResponse answers OpSuggest.
type SuggestResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []SuggestionItem `msgpack:"s"`
	Count       int              `msgpack:"c"`
	TimeTaken   int64            `msgpack:"t"` // microseconds
}

// ProductItem is one product on the wire. Price is a fixed two-decimal string.
type ProductItem struct {
	ID       string  `msgpack:"id"`
	Name     string  `msgpack:"n"`
	Category string  `msgpack:"cat"`
	Price    string  `msgpack:"p"`
	Rating   float64 `msgpack:"r"`
	InStock  bool    `msgpack:"st"`
	IsNew    bool    `msgpack:"new,omitempty"`
	Featured bool    `msgpack:"ft,omitempty"`
}

// SearchResponse answers OpSearch. Count is the number of matches before Limit.
type SearchResponse struct {
	ID        string        `msgpack:"id"`
	Products  []ProductItem `msgpack:"p"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// CategoryItem is one taxonomy entry with its product count.
type CategoryItem struct {
	ID    string `msgpack:"id"`
	Label string `msgpack:"l"`
	Icon  string `msgpack:"i,omitempty"`
	Count int    `msgpack:"n"`
}

// CategoriesResponse answers OpCategories.
type CategoriesResponse struct {
	ID         string         `msgpack:"id"`
	Categories []CategoryItem `msgpack:"cs"`
	Count      int            `msgpack:"c"`
}

// StatusResponse answers OpHealth and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

func toSuggestionItems(list []suggest.Suggestion) []SuggestionItem {
	out := make([]SuggestionItem, len(list))
	for i, sg := range list {
		out[i] = SuggestionItem{
			Kind:     sg.Kind.String(),
			Text:     sg.Text,
			Category: sg.Category,
			Count:    sg.Count,
		}
	}
	return out
}

func toProductItems(products []catalog.Product) []ProductItem {
	out := make([]ProductItem, len(products))
	for i, p := range products {
		out[i] = ProductItem{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price.StringFixed(2),
			Rating:   p.Rating,
			InStock:  p.InStock,
			IsNew:    p.IsNew,
			Featured: p.IsFeatured,
		}
	}
	return out
}
