package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/charmbracelet/log"
)

// HistoryFunc returns the current recent and trending query lists.
type HistoryFunc func() (recent, trending []string)

// RecordFunc is told about every results-page search with a non-blank query.
type RecordFunc func(ctx context.Context, query string) error

// SearchHandler serves read-only storefront search over one catalog.
type SearchHandler struct {
	catalog     *catalog.Catalog
	suggester   suggest.Suggester
	history     HistoryFunc
	record      RecordFunc
	newArrivals int
	logger      *log.Logger
}

// HandlerOption configures a SearchHandler.
type HandlerOption func(*SearchHandler)

func WithHistory(fn HistoryFunc) HandlerOption {
	return func(h *SearchHandler) { h.history = fn }
}

func WithRecorder(fn RecordFunc) HandlerOption {
	return func(h *SearchHandler) { h.record = fn }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) HandlerOption {
	return func(h *SearchHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithNewArrivals sets the default size of /products/new.
func WithNewArrivals(n int) HandlerOption {
	return func(h *SearchHandler) {
		if n > 0 {
			h.newArrivals = n
		}
	}
}

func NewSearchHandler(cat *catalog.Catalog, sg suggest.Suggester, opts ...HandlerOption) *SearchHandler {
	h := &SearchHandler{
		catalog:     cat,
		suggester:   sg,
		history:     func() ([]string, []string) { return nil, nil },
		newArrivals: catalog.DefaultNewArrivals,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// search answers a deep link: ?q=&category=&price=&rating=&inStock=&sort=
// plus quick=true for catalog-order header results and limit=N.
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, 0)
	if err != nil {
		log.Warnf("%d %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	query, st := filter.Decode(r.URL.Query())
	quick := r.URL.Query().Get("quick") == "true"

	var products []catalog.Product
	if quick {
		products = filter.Quick(h.catalog, query, st)
	} else {
		products = filter.Results(h.catalog, query, st)
		h.recordQuery(r.Context(), query)
	}

	summary := filter.Summarize(products)
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}

	WriteSuccess(w, http.StatusOK, SearchResponse{
		Query:    query,
		Filters:  toFiltersDTO(st),
		Link:     filter.Encode(query, st).Encode(),
		Count:    summary.Total,
		Products: toProductDTOs(products),
		Summary:  toSummaryDTO(summary),
	})
}

func (h *SearchHandler) recordQuery(ctx context.Context, query string) {
	if h.record == nil || strings.TrimSpace(query) == "" {
		return
	}
	if err := h.record(ctx, query); err != nil {
		log.Warnf("Recording query %q: %v", query, err)
	}
}

func (h *SearchHandler) suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get(filter.KeyQuery)
	recent, trending := h.history()
	list := h.suggester.Suggest(query, recent, trending)

	WriteSuccess(w, http.StatusOK, SuggestResponse{
		Query:       query,
		Count:       len(list),
		Suggestions: toSuggestionDTOs(list),
	})
}

func (h *SearchHandler) categories(w http.ResponseWriter, _ *http.Request) {
	cats := h.catalog.Categories()
	out := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		out[i] = CategoryDTO{
			ID:    c.ID,
			Label: c.Label,
			Icon:  c.Icon,
			Count: h.catalog.CountInCategory(c.ID),
		}
	}
	WriteSuccess(w, http.StatusOK, CategoriesResponse{Count: len(out), Categories: out})
}

func (h *SearchHandler) featured(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.Featured()
	WriteSuccess(w, http.StatusOK, ProductsResponse{Count: len(products), Products: toProductDTOs(products)})
}

func (h *SearchHandler) newArrivalsList(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, h.newArrivals)
	if err != nil {
		log.Warnf("%d %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}
	products := h.catalog.NewArrivals(limit)
	WriteSuccess(w, http.StatusOK, ProductsResponse{Count: len(products), Products: toProductDTOs(products)})
}

// facets lists the filter sidebar controls. Counts are over the products
// matching the text query alone, so each option shows what selecting it
// would narrow down from.
func (h *SearchHandler) facets(w http.ResponseWriter, r *http.Request) {
	query, _ := filter.Decode(r.URL.Query())
	base := filter.Quick(h.catalog, query, filter.Default())
	summary := filter.Summarize(base)

	resp := FacetsResponse{Summary: toSummaryDTO(summary)}

	resp.Categories = append(resp.Categories, OptionDTO{Value: catalog.AllCategory, Label: "All Categories", Count: summary.Total})
	for _, c := range h.catalog.Categories() {
		resp.Categories = append(resp.Categories, OptionDTO{Value: c.ID, Label: c.Label, Count: summary.Categories[c.ID]})
	}

	for _, pr := range filter.PriceRanges() {
		n := 0
		for _, p := range base {
			if pr.Contains(p.Price) {
				n++
			}
		}
		resp.Prices = append(resp.Prices, OptionDTO{Value: pr.String(), Label: pr.Label(), Count: n})
	}

	for _, rating := range filter.RatingOptions {
		n := 0
		for _, p := range base {
			if p.Rating >= float64(rating) {
				n++
			}
		}
		resp.Ratings = append(resp.Ratings, OptionDTO{Value: ratingValue(rating), Label: filter.RatingLabel(rating), Count: n})
	}

	for _, k := range filter.SortKeys() {
		resp.Sorts = append(resp.Sorts, OptionDTO{Value: k.String(), Label: k.Label()})
	}

	WriteSuccess(w, http.StatusOK, resp)
}

func ratingValue(n int) string {
	if n == 0 {
		return "all"
	}
	return strconv.Itoa(n)
}

func health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
