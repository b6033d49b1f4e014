package server

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/bastiangx/shopsearch/pkg/catalog/catalogtest"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/vmihailenco/msgpack/v5"
)

// run feeds msgs to a fresh server and returns a decoder positioned after
// the ready message.
func run(t *testing.T, opts []Option, msgs ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range msgs {
		if err := enc.Encode(m); err != nil {
			t.Fatal(err)
		}
	}

	cat := catalogtest.Sample(t)
	opts = append(opts, WithIO(&in, &out))
	srv := NewServer(cat, suggest.NewGenerator(cat), opts...)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("ready = %+v, %v", ready, err)
	}
	return dec
}

func decode[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding %T: %v", v, err)
	}
	return v
}

func productIDs(items []ProductItem) []string {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}

func TestSuggest(t *testing.T) {
	history := WithHistory(func() ([]string, []string) {
		return []string{"mug"}, []string{"lamp"}
	})
	dec := run(t, []Option{history},
		Request{ID: "1", Op: OpSuggest, Query: "lamp"},
		Request{ID: "2", Op: OpSuggest, Query: "  "},
	)

	resp := decode[SuggestResponse](t, dec)
	if resp.ID != "1" || resp.Count != 1 || resp.Suggestions[0].Text != "Desk Lamp" {
		t.Errorf("lamp: %+v", resp)
	}
	if resp.Suggestions[0].Kind != "product" || resp.Suggestions[0].Category != "home-kitchen" {
		t.Errorf("lamp item: %+v", resp.Suggestions[0])
	}

	resp = decode[SuggestResponse](t, dec)
	if resp.Count != 2 || resp.Suggestions[0].Text != "mug" || resp.Suggestions[1].Kind != "trending" {
		t.Errorf("empty query: %+v", resp)
	}
}

func TestSearch(t *testing.T) {
	var recorded []string
	recorder := WithRecorder(func(_ context.Context, q string) error {
		recorded = append(recorded, q)
		return nil
	})
	filters := &FilterParams{Price: "10-25", InStock: true, Sort: "price-low"}
	dec := run(t, []Option{recorder},
		Request{ID: "page", Op: OpSearch, Filters: filters},
		Request{ID: "limited", Op: OpSearch, Filters: filters, Limit: 1},
		Request{ID: "quick", Op: OpSearch, Query: "ORGANIZER", Quick: true},
		Request{ID: "lamp", Op: OpSearch, Query: "lamp", Filters: &FilterParams{Category: "nope", Sort: "bogus"}},
	)

	resp := decode[SearchResponse](t, dec)
	if got, want := productIDs(resp.Products), []string{"p-09", "p-04", "p-07"}; !slices.Equal(got, want) {
		t.Errorf("page = %v, want %v", got, want)
	}
	if resp.Products[0].Price != "10.00" {
		t.Errorf("price = %q", resp.Products[0].Price)
	}

	resp = decode[SearchResponse](t, dec)
	if resp.Count != 3 || len(resp.Products) != 1 {
		t.Errorf("limited: count=%d len=%d", resp.Count, len(resp.Products))
	}

	resp = decode[SearchResponse](t, dec)
	if got := productIDs(resp.Products); !slices.Equal(got, []string{"p-04"}) {
		t.Errorf("quick = %v", got)
	}

	resp = decode[SearchResponse](t, dec)
	if got := productIDs(resp.Products); !slices.Equal(got, []string{"p-07"}) {
		t.Errorf("unknown facets should not constrain: %v", got)
	}

	if !slices.Equal(recorded, []string{"lamp"}) {
		t.Errorf("recorded = %q", recorded)
	}
}

func TestCategoriesAndHealth(t *testing.T) {
	dec := run(t, nil,
		Request{ID: "c", Op: OpCategories},
		Request{Op: OpHealth},
	)

	cats := decode[CategoriesResponse](t, dec)
	if cats.Count != 5 || cats.Categories[0].ID != "tech-gadgets" || cats.Categories[0].Count != 3 {
		t.Errorf("categories = %+v", cats)
	}
	if cats.Categories[4].Count != 0 {
		t.Errorf("beauty count = %d", cats.Categories[4].Count)
	}

	health := decode[StatusResponse](t, dec)
	if health.Status != "ok" || health.ID == "" {
		t.Errorf("health = %+v", health)
	}
}

func TestErrors(t *testing.T) {
	dec := run(t, nil,
		Request{ID: "x", Op: "rank"},
		"not a map",
		Request{ID: "neg", Op: OpSearch, Limit: -1},
		Request{ID: "after", Op: OpHealth},
	)

	tests := []struct {
		id   string
		code int
	}{
		{"x", 400},
		{"", 400},
		{"neg", 400},
	}
	for _, tt := range tests {
		got := decode[ErrorResponse](t, dec)
		if tt.id != "" && got.ID != tt.id {
			t.Errorf("id = %q, want %q", got.ID, tt.id)
		}
		if got.Code != tt.code || got.Error == "" {
			t.Errorf("%s: %+v", tt.id, got)
		}
	}

	if got := decode[StatusResponse](t, dec); got.ID != "after" {
		t.Errorf("stream lost after bad message: %+v", got)
	}
}
