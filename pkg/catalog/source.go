package catalog

import (
	"context"

	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/charmbracelet/log"
	"github.com/jimlawless/whereami"
)

// Source provides the catalog once at startup.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// document is the on-disk layout of a catalog file.
type document struct {
	Categories []Category `toml:"categories"`
	Products   []Product  `toml:"products"`
}

// FileSource reads a catalog from a TOML file.
type FileSource struct {
	Path string
}

// NewFileSource returns a Source backed by the TOML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}

// LoadFile parses and validates the TOML catalog at path.
//
//	[[categories]]
//	id = "home-kitchen"
//	label = "Home & Kitchen"
//	icon = "home"
//
//	[[products]]
//	id = "p-001"
//	name = "LED Desk Lamp"
//	category = "home-kitchen"
//	price = "24.99"
//	rating = 4.5
//	in_stock = true
func LoadFile(path string) (*Catalog, error) {
	var doc document
	if err := utils.LoadTOMLFile(path, &doc); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cat, err := New(doc.Products, doc.Categories)
	if err != nil {
		return nil, e.Wrap(path, err)
	}
	log.Debugf("Loaded catalog from %s", path)
	return cat, nil
}

// SaveFile writes cat to path in the format LoadFile reads.
func SaveFile(cat *Catalog, path string) error {
	doc := document{
		Categories: cat.Categories(),
		Products:   cat.Products(),
	}
	if err := utils.SaveTOMLFile(doc, path); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
