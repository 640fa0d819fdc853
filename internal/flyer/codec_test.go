// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import (
	"strings"
	"testing"
)

func TestEncodeWireKeys(t *testing.T) {
	doc := Document{
		{
			Name: "Pekáreň",
			Subcategories: []Subcategory{
				{
					Name: "Chlieb",
					Placements: []Placement{
						{
							Name: "Rozne druhy",
							Products: []Product{
								{
									Name:        "Chlieb tmavý",
									Category:    "Pekáreň",
									Subcategory: "Chlieb",
									Placement:   "Rozne druhy",
									Quantity:    "500",
									Unit:        "g",
									SalePrice:   "1,29",
									SaleFrom:    "01.09.2026",
									SaleTo:      "07.09.2026",
								},
							},
						},
					},
				},
			},
		},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := string(data)

	// The Slovak field names are the persisted schema contract.
	for _, key := range []string{
		`"Kategória"`, `"Podkategórie"`, `"Podkategória"`, `"Zaradenia"`,
		`"Zaradenie"`, `"Produkty"`, `"Názov"`, `"Množstvo"`,
		`"Merná jednotka"`, `"Bežná cena za bal."`, `"Bežná jednotková cena"`,
		`"Akciová cena"`, `"Akciová jednotková cena"`, `"Doplnková Informácia"`,
		`"Dátum akcie od"`, `"Dátum akcie do"`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("encoded document missing wire key %s", key)
		}
	}

	if !strings.HasPrefix(out, "[\n  {") {
		t.Error("document must encode as a 2-space indented array")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("encoded document must end with a newline")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := testTemplate()
	doc, _, err := MergeProduct(doc, testProduct("Chlieb", "Pekáreň", "Chlieb", "Rozne druhy"), nil)
	if err != nil {
		t.Fatalf("seed merge error = %v", err)
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	back, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}

	again, err := Encode(back)
	if err != nil {
		t.Fatalf("re-Encode() error = %v", err)
	}
	if string(data) != string(again) {
		t.Error("document serialization is not byte-stable through a round trip")
	}
}

func TestDecodeDocumentFailClosed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty input", data: ""},
		{name: "whitespace only", data: "  \n "},
		{name: "truncated json", data: `[{"Kategória": "Pe`},
		{name: "json null", data: `null`},
		{name: "object instead of array", data: `{"Kategória": "Pekáreň"}`},
		{name: "array of strings", data: `["Pekáreň"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDocument([]byte(tt.data)); err == nil {
				t.Errorf("DecodeDocument(%q) = nil error, want failure", tt.data)
			}
		})
	}
}

func TestDecodeMaster(t *testing.T) {
	m, err := DecodeMaster([]byte(`{"Produkty": [{"Názov": "Mlieko"}]}`))
	if err != nil {
		t.Fatalf("DecodeMaster() error = %v", err)
	}
	if len(m.Products) != 1 || m.Products[0].Name != "Mlieko" {
		t.Fatalf("DecodeMaster() = %+v", m)
	}

	// Missing Produkty decodes to an empty, non-nil list.
	m, err = DecodeMaster([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeMaster({}) error = %v", err)
	}
	if m.Products == nil || len(m.Products) != 0 {
		t.Errorf("DecodeMaster({}).Products = %#v, want empty list", m.Products)
	}

	// Wrong shapes abort instead of coercing.
	for _, bad := range []string{"", `null and garbage`, `{"Produkty": "nie"}`, `[1,2]`} {
		if _, err := DecodeMaster([]byte(bad)); err == nil {
			t.Errorf("DecodeMaster(%q) = nil error, want failure", bad)
		}
	}
}
