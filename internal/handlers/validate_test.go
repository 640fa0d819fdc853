package handlers

import (
	"strings"
	"testing"

	"capflyer/internal/flyer"
)

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		product   flyer.Product
		wantError bool
	}{
		{"valid", flyer.Product{Name: "Chlieb pšeničný", SalePrice: "1,29"}, false},
		{"empty name", flyer.Product{SalePrice: "1,29"}, true},
		{"whitespace name", flyer.Product{Name: "   "}, true},
		{"name too long", flyer.Product{Name: strings.Repeat("a", 301)}, true},
		{"price too long", flyer.Product{Name: "Chlieb", SalePrice: strings.Repeat("9", 101)}, true},
		{"info too long", flyer.Product{Name: "Chlieb", Info: strings.Repeat("a", 1001)}, true},
		{"info at limit", flyer.Product{Name: "Chlieb", Info: strings.Repeat("a", 1000)}, false},
		{"valid dates", flyer.Product{Name: "Chlieb", SaleFrom: "01.09.2026", SaleTo: "07.09.2026"}, false},
		{"malformed start date", flyer.Product{Name: "Chlieb", SaleFrom: "2026-09-01"}, true},
		{"malformed end date", flyer.Product{Name: "Chlieb", SaleTo: "7.9."}, true},
		{"empty dates allowed", flyer.Product{Name: "Chlieb"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateProduct(tt.product)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}
