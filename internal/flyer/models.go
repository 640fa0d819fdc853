// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package flyer holds the flyer document model and the merge engine:
// hierarchy lookup, duplicate detection, incremental product merging, and
// the rebuild-from-template projection.
//
// The JSON field names are Slovak and are the persisted schema contract —
// they round-trip byte-for-byte and must never be renamed.
package flyer

// Product is a single flyer entry. All fields are strings as entered:
// prices and quantities use comma decimals ("1,29"), dates are DD.MM.YYYY.
// None of them is guaranteed to parse; see values.go for defensive helpers.
type Product struct {
	Name             string `json:"Názov"`
	Category         string `json:"Kategória"`
	Subcategory      string `json:"Podkategória"`
	Placement        string `json:"Zaradenie"`
	Quantity         string `json:"Množstvo"`
	Unit             string `json:"Merná jednotka"`
	RegularPrice     string `json:"Bežná cena za bal."`
	RegularUnitPrice string `json:"Bežná jednotková cena"`
	SalePrice        string `json:"Akciová cena"`
	SaleUnitPrice    string `json:"Akciová jednotková cena"`
	Info             string `json:"Doplnková Informácia"`
	SaleFrom         string `json:"Dátum akcie od"`
	SaleTo           string `json:"Dátum akcie do"`
}

// Placement is the leaf of the hierarchy and owns an ordered product list.
type Placement struct {
	Name     string    `json:"Zaradenie"`
	Products []Product `json:"Produkty"`
}

// Subcategory groups placements under a category.
type Subcategory struct {
	Name       string      `json:"Podkategória"`
	Placements []Placement `json:"Zaradenia"`
}

// Category is a top-level hierarchy node.
type Category struct {
	Name          string        `json:"Kategória"`
	Subcategories []Subcategory `json:"Podkategórie"`
}

// Document is the full flyer artifact: an ordered list of category roots.
// Sibling names are unique by exact string equality; they are canonical
// IDs, never free text.
type Document []Category

// MasterCatalog is the flat, country-scoped product list deduplicated by
// normalized name only, independent of any retailer hierarchy.
type MasterCatalog struct {
	Products []Product `json:"Produkty"`
}

// Clone returns a deep copy of the document. Products are value types, so
// copying the slices is sufficient; the copy shares no memory with the
// original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, cat := range d {
		c := Category{Name: cat.Name, Subcategories: make([]Subcategory, len(cat.Subcategories))}
		for j, sub := range cat.Subcategories {
			s := Subcategory{Name: sub.Name, Placements: make([]Placement, len(sub.Placements))}
			for k, plc := range sub.Placements {
				p := Placement{Name: plc.Name, Products: make([]Product, len(plc.Products))}
				copy(p.Products, plc.Products)
				s.Placements[k] = p
			}
			c.Subcategories[j] = s
		}
		out[i] = c
	}
	return out
}

// CountProducts returns the total number of products filed in the document.
func (d Document) CountProducts() int {
	n := 0
	for _, cat := range d {
		for _, sub := range cat.Subcategories {
			for _, plc := range sub.Placements {
				n += len(plc.Products)
			}
		}
	}
	return n
}
