// Package postgres loads the catalog from a PostgreSQL database.
//
// Expected tables:
//
//	categories(id text primary key, label text, icon text, position int)
//	products(id text primary key, name text, description text, category_id text,
//	         price numeric(12,2), rating real, in_stock bool, is_new bool,
//	         is_featured bool, position int)
package postgres

import (
	"context"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	categoriesQuery = `
		SELECT id, label, COALESCE(icon, '')
		FROM categories
		ORDER BY position, id;
	`
	productsQuery = `
		SELECT id, name, COALESCE(description, ''), category_id,
		       price::text, rating::float8, in_stock, is_new, is_featured
		FROM products
		ORDER BY position, id;
	`
)

// Querier is the subset of pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// CatalogSource implements catalog.Source over two tables.
type CatalogSource struct {
	db Querier
}

func NewCatalogSource(db Querier) *CatalogSource {
	return &CatalogSource{db: db}
}

// Load reads categories then products, both in their stored display order.
func (s *CatalogSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	products, err := s.products(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	log.Debugf("Read %d products and %d categories from postgres", len(products), len(categories))
	return catalog.New(products, categories)
}

func (s *CatalogSource) categories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.Query(ctx, categoriesQuery)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Category, error) {
		var c catalog.Category
		err := row.Scan(&c.ID, &c.Label, &c.Icon)
		return c, err
	})
}

func (s *CatalogSource) products(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.Query(ctx, productsQuery)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanProduct)
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p     catalog.Product
		price string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category,
		&price, &p.Rating, &p.InStock, &p.IsNew, &p.IsFeatured,
	); err != nil {
		return p, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return p, e.Wrap("product "+p.ID+" price", err)
	}
	p.Price = d
	return p, nil
}
