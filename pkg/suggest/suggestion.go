package suggest

import "strings"

// Kind tags where a suggestion came from.
type Kind uint8

const (
	KindProduct Kind = iota
	KindCategory
	KindRecent
	KindTrending
)

var kindNames = [...]string{
	KindProduct:  "product",
	KindCategory: "category",
	KindRecent:   "recent",
	KindTrending: "trending",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of String. ok is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Suggestion is one entry of the suggestion list.
type Suggestion struct {
	Kind Kind
	Text string
	// Category is the product's category for product suggestions and the
	// category id itself for category suggestions.
	Category string
	// Count is the number of products in the category; category suggestions only.
	Count int
}
