package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDedupeQueries(t *testing.T) {
	in := []string{"Desk Lamp", " ", "desk lamp", "led lights", "", "LED Lights ", "yoga mat"}
	want := []string{"Desk Lamp", "led lights", "yoga mat"}
	if got := DedupeQueries(in); !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeQueries() = %v, want %v", got, want)
	}
}

func TestStripControl(t *testing.T) {
	tests := map[string]string{
		"desk lamp":        "desk lamp",
		"desk\x1b[Alamp":   "desk[Alamp",
		"lamp\r\n":         "lamp",
		"\ttab\tseparated": "tabseparated",
	}
	for in, want := range tests {
		if got := StripControl(in); got != want {
			t.Errorf("StripControl(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"lamp", 10, "lamp"},
		{"lamp", 4, "lamp"},
		{"desk lamp", 5, "desk…"},
		{"café", 2, "c…"},
		{"lamp", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.RequireFromString("12.5")); got != "$12.50" {
		t.Errorf("FormatPrice(12.5) = %q", got)
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	type section struct {
		Name  string   `toml:"name"`
		Items []string `toml:"items"`
	}
	path := filepath.Join(t.TempDir(), "out.toml")
	in := map[string]section{"list": {Name: "recent", Items: []string{"a", "b"}}}

	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile() error: %v", err)
	}
	var out map[string]section
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatalf("LoadTOMLFile() error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %v, want %v", out, in)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestExtractHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	data := "[s]\nn = 3\nb = true\nstr = \"x\"\nlist = [\"a\", \"b\"]\nd1 = \"250ms\"\nd2 = 400\nbad = \"soon\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	raw, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := ExtractSection(raw, "s")
	if !ok {
		t.Fatal("section s missing")
	}

	if n, ok := ExtractInt64(s, "n"); !ok || n != 3 {
		t.Errorf("ExtractInt64 = %d, %v", n, ok)
	}
	if b, ok := ExtractBool(s, "b"); !ok || !b {
		t.Errorf("ExtractBool = %v, %v", b, ok)
	}
	if str, ok := ExtractString(s, "str"); !ok || str != "x" {
		t.Errorf("ExtractString = %q, %v", str, ok)
	}
	if list, ok := ExtractStrings(s, "list"); !ok || !reflect.DeepEqual(list, []string{"a", "b"}) {
		t.Errorf("ExtractStrings = %v, %v", list, ok)
	}
	if d, ok := ExtractDuration(s, "d1"); !ok || d != 250*time.Millisecond {
		t.Errorf("ExtractDuration(d1) = %v, %v", d, ok)
	}
	if d, ok := ExtractDuration(s, "d2"); !ok || d != 400*time.Millisecond {
		t.Errorf("ExtractDuration(d2) = %v, %v", d, ok)
	}
	if _, ok := ExtractDuration(s, "bad"); ok {
		t.Error("ExtractDuration(bad) succeeded")
	}
}

func TestCatalogCandidates(t *testing.T) {
	pr := &PathResolver{executableDir: "/opt/shop/bin", configDir: "/home/u/.config/shopsearch"}

	got := pr.catalogCandidates("data/catalog.toml")
	want := []string{
		"data/catalog.toml",
		"/opt/shop/bin/data/catalog.toml",
		"/opt/shop/bin/data/catalog.toml",
		"/opt/shop/data/catalog.toml",
		"/home/u/.config/shopsearch/catalog.toml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("catalogCandidates() = %v, want %v", got, want)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "mine.toml")
	if err := os.WriteFile(file, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if path, err := pr.GetCatalogPath(file); err != nil || path != file {
		t.Errorf("GetCatalogPath() = %q, %v", path, err)
	}
}
