/*
Package suggest produces the live suggestion list shown under the search box.

For an empty query the list is the recent searches followed by the trending ones,
passed through as given. For anything else the list is built from the catalog:

 1. up to 5 products whose name or description contains the query, in catalog order
 2. up to 3 categories whose label or id contains the query, in taxonomy order,
    each carrying the number of products it holds

Products always come before categories and the combined list never exceeds 8
entries. Matching is a case-insensitive substring test; there is no scoring.

	gen := suggest.NewGenerator(cat, suggest.WithCache(256))
	list := gen.Suggest("lamp", recent, trending)

Generation is pure: the same catalog, query and history lists always give the
same list, which is what makes the optional result cache safe.
*/
package suggest

// Suggester produces suggestions for a raw query.
type Suggester interface {
	// Suggest returns the suggestion list for query. recent and trending are
	// only consulted when the trimmed query is empty.
	Suggest(query string, recent, trending []string) []Suggestion
}
