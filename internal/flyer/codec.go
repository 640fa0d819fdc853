// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes a document or catalog to the persisted wire form:
// 2-space indented JSON terminated by a newline, so stored objects stay
// diffable line-wise.
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode flyer json: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses a stored flyer. Anything that is not a JSON array
// of category objects is an error — a malformed stored object must abort
// the caller's operation rather than degrade into an empty document.
func DecodeDocument(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("decode flyer: empty document")
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode flyer: %w", err)
	}
	// "null" unmarshals cleanly into a nil slice; it is not a document.
	if doc == nil {
		return nil, fmt.Errorf("decode flyer: document is null")
	}
	return doc, nil
}

// DecodeMaster parses a stored master catalog. A missing "Produkty" field
// decodes to an empty list; any other shape mismatch is an error.
func DecodeMaster(data []byte) (MasterCatalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return MasterCatalog{}, fmt.Errorf("decode master catalog: empty document")
	}
	var m MasterCatalog
	if err := json.Unmarshal(data, &m); err != nil {
		return MasterCatalog{}, fmt.Errorf("decode master catalog: %w", err)
	}
	if m.Products == nil {
		m.Products = []Product{}
	}
	return m, nil
}
