package suggest

import (
	"strings"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/charmbracelet/log"
)

const (
	MaxProductSuggestions  = 5
	MaxCategorySuggestions = 3
	MaxSuggestions         = 8
)

// productFields are searched for product suggestions; category ids are not.
const productFields = catalog.FieldName | catalog.FieldDescription

// Generate builds the suggestion list for query against cat.
func Generate(cat *catalog.Catalog, query string, recent, trending []string) []Suggestion {
	if strings.TrimSpace(query) == "" {
		return history(recent, trending)
	}
	return fromCatalog(cat, strings.ToLower(query))
}

// history is deliberately not truncated to MaxSuggestions.
func history(recent, trending []string) []Suggestion {
	out := make([]Suggestion, 0, len(recent)+len(trending))
	for _, q := range recent {
		out = append(out, Suggestion{Kind: KindRecent, Text: q})
	}
	for _, q := range trending {
		out = append(out, Suggestion{Kind: KindTrending, Text: q})
	}
	return out
}

func fromCatalog(cat *catalog.Catalog, queryLower string) []Suggestion {
	out := make([]Suggestion, 0, MaxSuggestions)
	for _, p := range cat.Search(queryLower, productFields, MaxProductSuggestions) {
		out = append(out, Suggestion{Kind: KindProduct, Text: p.Name, Category: p.Category})
	}

	matched := 0
	for _, c := range cat.Categories() {
		if matched == MaxCategorySuggestions {
			break
		}
		if !strings.Contains(strings.ToLower(c.Label), queryLower) && !strings.Contains(strings.ToLower(c.ID), queryLower) {
			continue
		}
		out = append(out, Suggestion{
			Kind:     KindCategory,
			Text:     c.Label,
			Category: c.ID,
			Count:    cat.CountInCategory(c.ID),
		})
		matched++
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// Generator binds a catalog and an optional cache of catalog-derived lists.
type Generator struct {
	catalog *catalog.Catalog
	cache   *Cache
}

// Option configures a Generator.
type Option func(*Generator)

// WithCache keeps up to size recent query results. size <= 0 disables caching.
func WithCache(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.cache = NewCache(size)
		}
	}
}

// NewGenerator returns a Generator over cat.
func NewGenerator(cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{catalog: cat}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Suggest implements Suggester.
func (g *Generator) Suggest(query string, recent, trending []string) []Suggestion {
	if strings.TrimSpace(query) == "" {
		return history(recent, trending)
	}

	queryLower := strings.ToLower(query)
	if g.cache != nil {
		if cached, ok := g.cache.Get(queryLower); ok {
			return cached
		}
	}

	out := fromCatalog(g.catalog, queryLower)
	if g.cache != nil {
		g.cache.Put(queryLower, out)
	}
	log.Debug("Generated suggestions", "query", queryLower, "count", len(out))
	return out
}

// Stats reports cache counters; empty without a cache.
func (g *Generator) Stats() map[string]int {
	if g.cache == nil {
		return map[string]int{}
	}
	return g.cache.Stats()
}
