package suggest_test

import (
	"reflect"
	"testing"

	"github.com/bastiangx/shopsearch/pkg/catalog/catalogtest"
	"github.com/bastiangx/shopsearch/pkg/suggest"
)

var (
	recent   = []string{"wireless earbuds", "kitchen organizer", "travel backpack"}
	trending = []string{"smart watch", "led lights", "phone holder", "desk lamp"}
)

func TestEmptyQueryReturnsHistory(t *testing.T) {
	cat := catalogtest.Sample(t)

	got := suggest.Generate(cat, "   ", recent, trending)
	if len(got) != len(recent)+len(trending) {
		t.Fatalf("Generate(blank) returned %d entries, want %d", len(got), len(recent)+len(trending))
	}
	for i, s := range got {
		wantKind, wantText := suggest.KindRecent, ""
		if i < len(recent) {
			wantText = recent[i]
		} else {
			wantKind, wantText = suggest.KindTrending, trending[i-len(recent)]
		}
		if s.Kind != wantKind || s.Text != wantText {
			t.Errorf("entry %d = %v %q, want %v %q", i, s.Kind, s.Text, wantKind, wantText)
		}
	}
}

func TestEmptyQueryIsNotCapped(t *testing.T) {
	cat := catalogtest.Sample(t)
	long := []string{"a", "b", "c", "d", "e", "f"}

	if got := suggest.Generate(cat, "", long, long); len(got) != 12 {
		t.Errorf("Generate(empty) returned %d entries, want 12", len(got))
	}
}

func TestGenerate(t *testing.T) {
	cat := catalogtest.Sample(t)

	tests := []struct {
		name  string
		query string
		want  []suggest.Suggestion
	}{
		{
			name:  "product then category",
			query: "kitchen",
			want: []suggest.Suggestion{
				{Kind: suggest.KindProduct, Text: "Kitchen Organizer", Category: "home-kitchen"},
				{Kind: suggest.KindCategory, Text: "Home & Kitchen", Category: "home-kitchen", Count: 3},
			},
		},
		{
			name:  "case insensitive",
			query: "SMART",
			want: []suggest.Suggestion{
				{Kind: suggest.KindProduct, Text: "Smart Watch", Category: "tech-gadgets"},
			},
		},
		{
			name:  "category by id only",
			query: "tech-",
			want: []suggest.Suggestion{
				{Kind: suggest.KindCategory, Text: "Tech Gadgets", Category: "tech-gadgets", Count: 3},
			},
		},
		{
			name:  "empty category keeps zero count",
			query: "beauty",
			want: []suggest.Suggestion{
				{Kind: suggest.KindCategory, Text: "Beauty & Personal Care", Category: "beauty", Count: 0},
			},
		},
		{
			name:  "description match",
			query: "usb",
			want: []suggest.Suggestion{
				{Kind: suggest.KindProduct, Text: "Desk Lamp", Category: "home-kitchen"},
			},
		},
		{
			name:  "untrimmed query keeps its space",
			query: " lamp",
			want: []suggest.Suggestion{
				{Kind: suggest.KindProduct, Text: "Desk Lamp", Category: "home-kitchen"},
			},
		},
		{
			name:  "no match",
			query: "qwerty",
			want:  []suggest.Suggestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggest.Generate(cat, tt.query, recent, trending)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Generate(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestBoundAndGroupOrder(t *testing.T) {
	cat := catalogtest.Sample(t)

	for _, q := range []string{"e", "a", "s", "o", "tech", "ing", "r"} {
		got := suggest.Generate(cat, q, recent, trending)
		if len(got) > suggest.MaxSuggestions {
			t.Errorf("Generate(%q) returned %d entries", q, len(got))
		}

		products, categories, seenCategory := 0, 0, false
		for _, s := range got {
			switch s.Kind {
			case suggest.KindProduct:
				if seenCategory {
					t.Errorf("Generate(%q): product %q after a category", q, s.Text)
				}
				products++
			case suggest.KindCategory:
				seenCategory = true
				categories++
			default:
				t.Errorf("Generate(%q): unexpected kind %v", q, s.Kind)
			}
		}
		if products > suggest.MaxProductSuggestions || categories > suggest.MaxCategorySuggestions {
			t.Errorf("Generate(%q): %d products, %d categories", q, products, categories)
		}
	}
}

func TestGenerateFullList(t *testing.T) {
	cat := catalogtest.Sample(t)

	got := suggest.Generate(cat, "e", nil, nil)
	var texts []string
	for _, s := range got {
		texts = append(texts, s.Text)
	}
	want := []string{
		"Wireless Earbuds", "Smart Watch", "LED Strip Lights", "Kitchen Organizer", "Travel Backpack",
		"Tech Gadgets", "Home & Kitchen", "Fashion & Accessories",
	}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Generate(e) = %v, want %v", texts, want)
	}
}

func TestGeneratorMatchesGenerate(t *testing.T) {
	cat := catalogtest.Sample(t)
	gen := suggest.NewGenerator(cat, suggest.WithCache(8))

	for _, q := range []string{"", "lamp", "LAMP", "lamp", "kitchen"} {
		want := suggest.Generate(cat, q, recent, trending)
		if got := gen.Suggest(q, recent, trending); !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest(%q) = %+v, want %+v", q, got, want)
		}
	}

	stats := gen.Stats()
	if stats["cacheHits"] != 2 || stats["cachedQueries"] != 2 {
		t.Errorf("Stats() = %v, want 2 hits over 2 queries", stats)
	}
}

func TestGeneratorResultsAreIndependent(t *testing.T) {
	gen := suggest.NewGenerator(catalogtest.Sample(t), suggest.WithCache(4))

	first := gen.Suggest("kitchen", nil, nil)
	first[0].Text = "mutated"

	if second := gen.Suggest("kitchen", nil, nil); second[0].Text != "Kitchen Organizer" {
		t.Errorf("cached entry mutated through returned slice: %q", second[0].Text)
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range []suggest.Kind{suggest.KindProduct, suggest.KindCategory, suggest.KindRecent, suggest.KindTrending} {
		parsed, ok := suggest.ParseKind(k.String())
		if !ok || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, ok)
		}
	}
	if _, ok := suggest.ParseKind("banner"); ok {
		t.Error("ParseKind(banner) succeeded")
	}
}

func BenchmarkGenerate(b *testing.B) {
	cat := catalogtest.Sample(b)
	queries := []string{"e", "lamp", "kitchen", "zz"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		suggest.Generate(cat, queries[i%len(queries)], recent, trending)
	}
}
