/*
Package catalog holds the product catalog and category taxonomy that search runs against.

A Catalog is built once from a Source and never mutated afterwards, so it can be
shared by any number of concurrent readers. Every product references exactly one
category of the flat taxonomy; the reserved id "all" is the sentinel meaning
"no category constraint" and can never name a real category.

	cat, err := catalog.New(products, categories)
	hits := cat.Search("lamp", catalog.FieldName|catalog.FieldDescription, 5)

Text lookups go through an Index, a set of patricia tries over every lowercased
suffix of the searchable fields, so a substring match is a single subtree visit.
*/
package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// AllCategory is the sentinel category value meaning "no constraint".
const AllCategory = "all"

// DefaultNewArrivals is how many new products the storefront home page shows.
const DefaultNewArrivals = 12

// IsAll reports whether id is the all-categories sentinel ("All", "all", ...).
func IsAll(id string) bool {
	return strings.EqualFold(id, AllCategory)
}

// Product is a single catalog entry.
type Product struct {
	ID          string          `toml:"id"`
	Name        string          `toml:"name"`
	Description string          `toml:"description"`
	Category    string          `toml:"category"`
	Price       decimal.Decimal `toml:"price"`
	Rating      float64         `toml:"rating"`
	InStock     bool            `toml:"in_stock"`
	IsNew       bool            `toml:"is_new"`
	IsFeatured  bool            `toml:"is_featured"`
}

// Category is one entry of the flat taxonomy. Icon is an opaque display token.
type Category struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Icon  string `toml:"icon"`
}

// Catalog is an immutable, validated set of products and categories.
type Catalog struct {
	products    []Product
	categories  []Category
	byID        map[string]int
	categoryPos map[string]int
	counts      map[string]int
	index       *Index
}

// New validates products and categories and builds the catalog with its text index.
// Product order and category order are preserved; they define "catalog order"
// and "taxonomy order" everywhere else.
func New(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:    make([]Product, len(products)),
		categories:  make([]Category, len(categories)),
		byID:        make(map[string]int, len(products)),
		categoryPos: make(map[string]int, len(categories)),
		counts:      make(map[string]int, len(categories)),
	}
	copy(c.products, products)
	copy(c.categories, categories)

	for i, cat := range c.categories {
		if cat.ID == "" {
			return nil, e.Wrap(fmt.Sprintf("category #%d", i), e.ErrMissingField)
		}
		if IsAll(cat.ID) {
			return nil, e.Wrap(fmt.Sprintf("category %q", cat.ID), e.ErrReservedCategory)
		}
		if _, dup := c.categoryPos[cat.ID]; dup {
			return nil, e.Wrap(fmt.Sprintf("category %q", cat.ID), e.ErrDuplicateCategory)
		}
		c.categoryPos[cat.ID] = i
	}

	for i, p := range c.products {
		if err := c.validateProduct(i, p); err != nil {
			return nil, err
		}
		c.byID[p.ID] = i
		c.counts[p.Category]++
	}

	c.index = buildIndex(c.products)
	log.Debugf("Catalog built: %d products, %d categories", len(c.products), len(c.categories))
	return c, nil
}

func (c *Catalog) validateProduct(i int, p Product) error {
	if p.ID == "" {
		return e.Wrap(fmt.Sprintf("product #%d", i), e.ErrMissingField)
	}
	where := fmt.Sprintf("product %q", p.ID)
	if _, dup := c.byID[p.ID]; dup {
		return e.Wrap(where, e.ErrDuplicateProduct)
	}
	if p.Name == "" {
		return e.Wrap(where+" name", e.ErrMissingField)
	}
	if _, ok := c.categoryPos[p.Category]; !ok {
		return e.Wrap(fmt.Sprintf("%s category %q", where, p.Category), e.ErrUnknownCategory)
	}
	if p.Price.IsNegative() {
		return e.Wrap(where, e.ErrNegativePrice)
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > 5 {
		return e.Wrap(where, e.ErrRatingOutOfRange)
	}
	return nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns a copy of the taxonomy in taxonomy order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categoryPos[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// HasCategory reports whether id names a real category. The sentinel never does.
func (c *Catalog) HasCategory(id string) bool {
	_, ok := c.categoryPos[id]
	return ok
}

// CountInCategory returns how many products belong to the category id.
func (c *Catalog) CountInCategory(id string) int {
	return c.counts[id]
}

// Search returns products whose selected fields contain queryLower, in catalog order.
// queryLower must already be lowercased. limit <= 0 means no limit.
func (c *Catalog) Search(queryLower string, fields Field, limit int) []Product {
	ordinals := c.index.Lookup(queryLower, fields, limit)
	out := make([]Product, len(ordinals))
	for i, o := range ordinals {
		out[i] = c.products[o]
	}
	return out
}

// Featured returns the featured products in catalog order.
func (c *Catalog) Featured() []Product {
	var out []Product
	for _, p := range c.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns up to limit products flagged as new, in catalog order.
// limit <= 0 returns all of them.
func (c *Catalog) NewArrivals(limit int) []Product {
	var out []Product
	for _, p := range c.products {
		if limit > 0 && len(out) == limit {
			break
		}
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}
