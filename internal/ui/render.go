package ui

import (
	"fmt"
	"strings"

	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	nameWidth = 32
	descWidth = 48
)

var kindIcons = map[suggest.Kind]string{
	suggest.KindProduct:  "•",
	suggest.KindCategory: "#",
	suggest.KindRecent:   "↺",
	suggest.KindTrending: "↗",
}

// Suggestion renders one suggestion line. selected highlights it.
func Suggestion(sg suggest.Suggestion, selected bool) string {
	text := sg.Text
	if selected {
		text = SelectedStyle.Render(text)
	}
	line := badgeStyle.Render(kindIcons[sg.Kind]) + " " + text
	switch sg.Kind {
	case suggest.KindCategory:
		line += MutedStyle.Render(fmt.Sprintf(" (%d)", sg.Count))
	case suggest.KindProduct:
		line += " " + categoryStyle.Render(sg.Category)
	case suggest.KindRecent, suggest.KindTrending:
		line += " " + MutedStyle.Render(sg.Kind.String())
	}
	return line
}

// Suggestions renders a numbered list, or a hint when it is empty.
func Suggestions(list []suggest.Suggestion, selected int) string {
	if len(list) == 0 {
		return MutedStyle.Render("no suggestions")
	}
	var b strings.Builder
	for i, sg := range list {
		fmt.Fprintf(&b, "%2d. %s", i+1, Suggestion(sg, i == selected))
		if i < len(list)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Product renders one product line.
func Product(p catalog.Product, showDescription bool) string {
	name := fmt.Sprintf("%-*s", nameWidth, utils.Truncate(p.Name, nameWidth))
	stars := lipgloss.NewStyle().Foreground(RatingColor(p.Rating)).Render(fmt.Sprintf("★ %.1f", p.Rating))
	line := fmt.Sprintf("%s %s %s", name, priceStyle.Render(fmt.Sprintf("%9s", utils.FormatPrice(p.Price))), stars)
	if !p.InStock {
		line += " " + outOfStockStyle.Render("out of stock")
	}
	if p.IsNew {
		line += " " + badgeStyle.Render("new")
	}
	if showDescription && p.Description != "" {
		line += "\n    " + MutedStyle.Render(utils.Truncate(p.Description, descWidth))
	}
	return line
}

// Products renders up to limit products under title with a total count.
// limit <= 0 renders them all.
func Products(title string, products []catalog.Product, limit int, showDescription bool) string {
	header := TitleStyle.Render(title) + MutedStyle.Render(fmt.Sprintf(" %d found", len(products)))
	if len(products) == 0 {
		return header
	}
	shown := products
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	lines := make([]string, 0, len(shown)+2)
	lines = append(lines, header)
	for _, p := range shown {
		lines = append(lines, "  "+Product(p, showDescription))
	}
	if len(shown) < len(products) {
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("  … %d more", len(products)-len(shown))))
	}
	return strings.Join(lines, "\n")
}

// Filters renders the active facets on one line.
func Filters(s filter.State) string {
	parts := []string{
		"category: " + s.Category,
		"price: " + s.Price.Label(),
		"rating: " + filter.RatingLabel(s.Rating),
		"sort: " + s.SortBy.Label(),
	}
	if s.InStock {
		parts = append(parts, "in stock only")
	}
	return MutedStyle.Render(strings.Join(parts, " · "))
}

// Categories renders the taxonomy with product counts.
func Categories(cat *catalog.Catalog) string {
	lines := []string{TitleStyle.Render("Categories")}
	for _, c := range cat.Categories() {
		lines = append(lines, fmt.Sprintf("  %-24s %s %s", c.ID, c.Label, MutedStyle.Render(fmt.Sprintf("(%d)", cat.CountInCategory(c.ID)))))
	}
	return strings.Join(lines, "\n")
}

// Clip cuts every line of a styled block to width terminal cells, keeping
// escape sequences intact. width <= 0 leaves the block as is.
func Clip(block string, width int) string {
	if width <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if xansi.StringWidth(line) > width {
			lines[i] = xansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
