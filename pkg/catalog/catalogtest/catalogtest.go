// Package catalogtest provides small, fixed catalogs for tests.
package catalogtest

import (
	"testing"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/shopspring/decimal"
)

// Categories is the taxonomy shared by Sample. "beauty" intentionally has no products.
func Categories() []catalog.Category {
	return []catalog.Category{
		{ID: "tech-gadgets", Label: "Tech Gadgets", Icon: "smartphone"},
		{ID: "home-kitchen", Label: "Home & Kitchen", Icon: "home"},
		{ID: "fashion", Label: "Fashion & Accessories", Icon: "shirt"},
		{ID: "sports-outdoors", Label: "Sports & Outdoors", Icon: "dumbbell"},
		{ID: "beauty", Label: "Beauty & Personal Care", Icon: "sparkles"},
	}
}

// Products is the product list behind Sample, in catalog order.
func Products() []catalog.Product {
	return []catalog.Product{
		{ID: "p-01", Name: "Wireless Earbuds", Description: "Bluetooth earbuds with charging case", Category: "tech-gadgets", Price: Price("29.99"), Rating: 4.4, InStock: true, IsNew: true, IsFeatured: true},
		{ID: "p-02", Name: "Smart Watch", Description: "Fitness tracker with heart rate monitor", Category: "tech-gadgets", Price: Price("49.99"), Rating: 4.1, InStock: true, IsFeatured: true},
		{ID: "p-03", Name: "LED Strip Lights", Description: "Color changing lights for any room", Category: "home-kitchen", Price: Price("8.99"), Rating: 3.9, IsNew: true},
		{ID: "p-04", Name: "Kitchen Organizer", Description: "Stackable drawer organizer for utensils", Category: "home-kitchen", Price: Price("12.50"), Rating: 4.6, InStock: true},
		{ID: "p-05", Name: "Travel Backpack", Description: "Water resistant backpack with laptop sleeve", Category: "fashion", Price: Price("54.00"), Rating: 4.7, InStock: true, IsNew: true, IsFeatured: true},
		{ID: "p-06", Name: "Phone Holder", Description: "Adjustable car mount for any phone", Category: "tech-gadgets", Price: Price("9.99"), Rating: 3.2, InStock: true},
		{ID: "p-07", Name: "Desk Lamp", Description: "Dimmable LED desk lamp with USB port", Category: "home-kitchen", Price: Price("25.00"), Rating: 4.0, InStock: true, IsNew: true},
		{ID: "p-08", Name: "Yoga Mat", Description: "Non-slip exercise mat", Category: "sports-outdoors", Price: Price("19.99"), Rating: 4.5},
		{ID: "p-09", Name: "Insulated Water Bottle", Description: "Keeps drinks cold for 24 hours", Category: "sports-outdoors", Price: Price("10.00"), Rating: 4.8, InStock: true, IsNew: true},
		{ID: "p-10", Name: "Silk Scarf", Description: "Lightweight scarf in assorted colors", Category: "fashion", Price: Price("50.00"), Rating: 3.5, InStock: true},
	}
}

// Sample builds the ten-product catalog used across package tests.
func Sample(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(Products(), Categories())
	if err != nil {
		t.Fatalf("building sample catalog: %v", err)
	}
	return cat
}

// Pair builds the two-product catalog of the storefront lamp/strip scenario.
func Pair(t testing.TB) *catalog.Catalog {
	t.Helper()
	products := []catalog.Product{
		{ID: "lamp", Name: "Desk Lamp", Category: "tech-gadgets", Price: Price("15"), Rating: 4, InStock: true},
		{ID: "strip", Name: "LED Strip", Category: "tech-gadgets", Price: Price("8"), Rating: 3, IsNew: true},
	}
	cat, err := catalog.New(products, Categories()[:1])
	if err != nil {
		t.Fatalf("building pair catalog: %v", err)
	}
	return cat
}

// Price parses s or panics; fixtures only.
func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// IDs returns the product ids in order.
func IDs(products []catalog.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
