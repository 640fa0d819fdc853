package handlers

import (
	"strings"
	"unicode/utf8"

	"capflyer/internal/flyer"
)

// Validation limits for product entry fields.
const (
	maxNameLen  = 300
	maxFieldLen = 100
	maxInfoLen  = 1_000
)

// validateProduct checks an entered product and returns the first error found.
func validateProduct(p flyer.Product) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Product name is required."
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "Product name is too long (max 300 characters)."
	}
	for _, f := range []struct {
		label string
		value string
	}{
		{"Quantity", p.Quantity},
		{"Unit", p.Unit},
		{"Regular price", p.RegularPrice},
		{"Regular unit price", p.RegularUnitPrice},
		{"Sale price", p.SalePrice},
		{"Sale unit price", p.SaleUnitPrice},
		{"Sale start date", p.SaleFrom},
		{"Sale end date", p.SaleTo},
	} {
		if utf8.RuneCountInString(f.value) > maxFieldLen {
			return f.label + " is too long (max 100 characters)."
		}
	}
	if utf8.RuneCountInString(p.Info) > maxInfoLen {
		return "Additional information is too long (max 1,000 characters)."
	}
	if p.SaleFrom != "" {
		if _, ok := flyer.ParseDate(p.SaleFrom); !ok {
			return "Sale start date must use the DD.MM.YYYY format."
		}
	}
	if p.SaleTo != "" {
		if _, ok := flyer.ParseDate(p.SaleTo); !ok {
			return "Sale end date must use the DD.MM.YYYY format."
		}
	}
	return ""
}
