package catalog

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Field selects which product text an Index lookup searches.
type Field uint8

const (
	FieldName Field = 1 << iota
	FieldDescription
	FieldCategory
)

var indexedFields = [...]Field{FieldName, FieldDescription, FieldCategory}

// posting lists the products (by catalog ordinal, ascending) sharing one suffix.
type posting struct {
	ordinals []int
}

// Index answers case-insensitive substring queries over product text.
// Each field keeps a patricia trie holding every lowercased suffix of the field,
// which turns "contains q" into "has a suffix starting with q".
type Index struct {
	size  int
	tries map[Field]*patricia.Trie
}

func buildIndex(products []Product) *Index {
	idx := &Index{
		size:  len(products),
		tries: make(map[Field]*patricia.Trie, len(indexedFields)),
	}
	for _, f := range indexedFields {
		idx.tries[f] = patricia.NewTrie()
	}
	for i, p := range products {
		idx.add(FieldName, i, p.Name)
		idx.add(FieldDescription, i, p.Description)
		idx.add(FieldCategory, i, p.Category)
	}
	return idx
}

func (idx *Index) add(field Field, ordinal int, text string) {
	trie := idx.tries[field]
	lower := strings.ToLower(text)
	// ranging over a string yields rune start offsets, so no suffix splits a rune
	for start := range lower {
		key := patricia.Prefix(lower[start:])
		if item := trie.Get(key); item != nil {
			p := item.(*posting)
			if p.ordinals[len(p.ordinals)-1] != ordinal {
				p.ordinals = append(p.ordinals, ordinal)
			}
			continue
		}
		trie.Insert(key, &posting{ordinals: []int{ordinal}})
	}
}

// Lookup returns the ordinals of products whose selected fields contain queryLower,
// ascending. An empty query matches everything. limit <= 0 means no limit.
func (idx *Index) Lookup(queryLower string, fields Field, limit int) []int {
	if queryLower == "" {
		n := idx.size
		if limit > 0 && limit < n {
			n = limit
		}
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	hit := make([]bool, idx.size)
	for _, f := range indexedFields {
		if fields&f == 0 {
			continue
		}
		err := idx.tries[f].VisitSubtree(patricia.Prefix(queryLower), func(_ patricia.Prefix, item patricia.Item) error {
			for _, o := range item.(*posting).ordinals {
				hit[o] = true
			}
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting index subtree: %v", err)
		}
	}

	var out []int
	for o, ok := range hit {
		if !ok {
			continue
		}
		out = append(out, o)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
