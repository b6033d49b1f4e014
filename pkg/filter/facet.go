package filter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRange is the closed set of price buckets.
type PriceRange uint8

const (
	PriceAll PriceRange = iota
	PriceUnder10
	Price10To25
	Price25To50
	PriceOver50
)

var priceRanges = [...]struct {
	token string
	label string
}{
	PriceAll:     {"all", "All Prices"},
	PriceUnder10: {"under-10", "Under $10"},
	Price10To25:  {"10-25", "$10 - $25"},
	Price25To50:  {"25-50", "$25 - $50"},
	PriceOver50:  {"over-50", "Over $50"},
}

var (
	ten        = decimal.NewFromInt(10)
	twentyFive = decimal.NewFromInt(25)
	fifty      = decimal.NewFromInt(50)
)

// PriceRanges lists every bucket in display order.
func PriceRanges() []PriceRange {
	return []PriceRange{PriceAll, PriceUnder10, Price10To25, Price25To50, PriceOver50}
}

// ParsePriceRange maps a query-string token to a bucket. Unknown tokens mean PriceAll.
func ParsePriceRange(s string) PriceRange {
	switch normalizeToken(s) {
	case "under-10":
		return PriceUnder10
	case "10-25":
		return Price10To25
	case "25-50":
		return Price25To50
	case "over-50":
		return PriceOver50
	default:
		return PriceAll
	}
}

func (r PriceRange) String() string {
	if int(r) >= len(priceRanges) {
		return priceRanges[PriceAll].token
	}
	return priceRanges[r].token
}

// Label is the human readable bucket name.
func (r PriceRange) Label() string {
	if int(r) >= len(priceRanges) {
		return priceRanges[PriceAll].label
	}
	return priceRanges[r].label
}

// Contains reports whether price falls in the bucket. Both inner boundaries are
// inclusive, so 25 belongs to 10-25 and 25-50 alike.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	switch r {
	case PriceUnder10:
		return price.LessThan(ten)
	case Price10To25:
		return price.GreaterThanOrEqual(ten) && price.LessThanOrEqual(twentyFive)
	case Price25To50:
		return price.GreaterThanOrEqual(twentyFive) && price.LessThanOrEqual(fifty)
	case PriceOver50:
		return price.GreaterThan(fifty)
	default:
		return true
	}
}

func (r PriceRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText never fails; unknown tokens decode to PriceAll.
func (r *PriceRange) UnmarshalText(text []byte) error {
	*r = ParsePriceRange(string(text))
	return nil
}

// SortKey is the closed set of result orderings.
type SortKey uint8

const (
	SortRelevance SortKey = iota
	SortPriceLow
	SortPriceHigh
	SortRating
	SortNewest
)

var sortKeys = [...]struct {
	token string
	label string
}{
	SortRelevance: {"relevance", "Relevance"},
	SortPriceLow:  {"price-low", "Price: Low to High"},
	SortPriceHigh: {"price-high", "Price: High to Low"},
	SortRating:    {"rating", "Highest Rated"},
	SortNewest:    {"newest", "Newest"},
}

// SortKeys lists every ordering in display order.
func SortKeys() []SortKey {
	return []SortKey{SortRelevance, SortPriceLow, SortPriceHigh, SortRating, SortNewest}
}

// ParseSortKey maps a query-string token to a sort key. Unknown tokens mean SortRelevance.
func ParseSortKey(s string) SortKey {
	switch normalizeToken(s) {
	case "price-low":
		return SortPriceLow
	case "price-high":
		return SortPriceHigh
	case "rating":
		return SortRating
	case "newest":
		return SortNewest
	default:
		return SortRelevance
	}
}

func (k SortKey) String() string {
	if int(k) >= len(sortKeys) {
		return sortKeys[SortRelevance].token
	}
	return sortKeys[k].token
}

// Label is the human readable sort name.
func (k SortKey) Label() string {
	if int(k) >= len(sortKeys) {
		return sortKeys[SortRelevance].label
	}
	return sortKeys[k].label
}

func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText never fails; unknown tokens decode to SortRelevance.
func (k *SortKey) UnmarshalText(text []byte) error {
	*k = ParseSortKey(string(text))
	return nil
}

// MaxRating is the highest selectable minimum rating.
const MaxRating = 4

// RatingOptions are the minimum ratings offered by the storefront, in display order.
var RatingOptions = []int{0, 4, 3, 2}

// NormalizeRating keeps n when it is a valid threshold and returns 0 otherwise.
func NormalizeRating(n int) int {
	if n < 0 || n > MaxRating {
		return 0
	}
	return n
}

// ParseRating parses a rating threshold token. Anything invalid means 0.
func ParseRating(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return NormalizeRating(n)
}

// RatingLabel names a rating threshold for display.
func RatingLabel(n int) string {
	if n = NormalizeRating(n); n == 0 {
		return "All Ratings"
	}
	return strconv.Itoa(n) + "+ Stars"
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
