package httpapi

import (
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
)

// ProductDTO is a product as served over HTTP. Prices are fixed two-decimal strings.
type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
	Rating      float64 `json:"rating"`
	InStock     bool    `json:"inStock"`
	IsNew       bool    `json:"isNew"`
	IsFeatured  bool    `json:"isFeatured"`
}

type CategoryDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Count int    `json:"count"`
}

type SuggestionDTO struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type FiltersDTO struct {
	Category string `json:"category"`
	Price    string `json:"price"`
	Rating   int    `json:"rating"`
	InStock  bool   `json:"inStock"`
	Sort     string `json:"sort"`
}

type SummaryDTO struct {
	Total      int            `json:"total"`
	InStock    int            `json:"inStock"`
	OutOfStock int            `json:"outOfStock"`
	MinPrice   string         `json:"minPrice"`
	MaxPrice   string         `json:"maxPrice"`
	Categories map[string]int `json:"categories"`
}

type SearchResponse struct {
	Query    string       `json:"query"`
	Filters  FiltersDTO   `json:"filters"`
	Link     string       `json:"link"`
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
	Summary  SummaryDTO   `json:"summary"`
}

type SuggestResponse struct {
	Query       string          `json:"query"`
	Count       int             `json:"count"`
	Suggestions []SuggestionDTO `json:"suggestions"`
}

type ProductsResponse struct {
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
}

type CategoriesResponse struct {
	Count      int           `json:"count"`
	Categories []CategoryDTO `json:"categories"`
}

// OptionDTO is one choice of a facet control.
type OptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
}

// FacetsResponse lists every filter control with its options.
type FacetsResponse struct {
	Categories []OptionDTO `json:"categories"`
	Prices     []OptionDTO `json:"prices"`
	Ratings    []OptionDTO `json:"ratings"`
	Sorts      []OptionDTO `json:"sorts"`
	Summary    SummaryDTO  `json:"summary"`
}

func toProductDTO(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price.StringFixed(2),
		Rating:      p.Rating,
		InStock:     p.InStock,
		IsNew:       p.IsNew,
		IsFeatured:  p.IsFeatured,
	}
}

func toProductDTOs(products []catalog.Product) []ProductDTO {
	out := make([]ProductDTO, len(products))
	for i, p := range products {
		out[i] = toProductDTO(p)
	}
	return out
}

func toSuggestionDTOs(list []suggest.Suggestion) []SuggestionDTO {
	out := make([]SuggestionDTO, len(list))
	for i, sg := range list {
		out[i] = SuggestionDTO{
			Kind:     sg.Kind.String(),
			Text:     sg.Text,
			Category: sg.Category,
			Count:    sg.Count,
		}
	}
	return out
}

func toFiltersDTO(s filter.State) FiltersDTO {
	return FiltersDTO{
		Category: s.Category,
		Price:    s.Price.String(),
		Rating:   s.Rating,
		InStock:  s.InStock,
		Sort:     s.SortBy.String(),
	}
}

func toSummaryDTO(s filter.Summary) SummaryDTO {
	return SummaryDTO{
		Total:      s.Total,
		InStock:    s.InStock,
		OutOfStock: s.OutOfStock,
		MinPrice:   s.MinPrice.StringFixed(2),
		MaxPrice:   s.MaxPrice.StringFixed(2),
		Categories: s.Categories,
	}
}
