// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hierarchy loads the category tree template products are filed
// into. A default Slovak hierarchy is compiled into the binary; a
// deployment can point HIERARCHY_PATH at its own file instead.
package hierarchy

import (
	_ "embed"
	"fmt"
	"os"

	"capflyer/internal/flyer"
)

//go:embed hierarchia.json
var defaultHierarchy []byte

// Default returns the embedded hierarchy template.
func Default() (flyer.Document, error) {
	doc, err := flyer.DecodeDocument(defaultHierarchy)
	if err != nil {
		return nil, fmt.Errorf("embedded hierarchy: %w", err)
	}
	return doc, nil
}

// Load reads a hierarchy template from path, falling back to the embedded
// default when path is empty. A file that exists but does not parse is an
// error — a broken template must not silently degrade to the default.
func Load(path string) (flyer.Document, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hierarchy %s: %w", path, err)
	}
	doc, err := flyer.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("hierarchy %s: %w", path, err)
	}
	return doc, nil
}
