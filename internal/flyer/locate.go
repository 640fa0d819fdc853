// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import "fmt"

// Level identifies which hierarchy level a lookup failed at.
type Level string

const (
	LevelCategory    Level = "category"
	LevelSubcategory Level = "subcategory"
	LevelPlacement   Level = "placement"
)

// NotFoundError reports a failed hierarchy lookup with the level that
// could not be resolved and the key that was searched for.
type NotFoundError struct {
	Level Level
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Level, e.Key)
}

// Locate resolves a category/subcategory/placement triple to the placement
// node it names. Keys are compared by exact string equality — hierarchy
// keys are canonical IDs, not free text, so no normalization applies here.
// The returned pointer aliases the document's placement.
func Locate(doc Document, category, subcategory, placement string) (*Placement, error) {
	ci := findCategory(doc, category)
	if ci < 0 {
		return nil, &NotFoundError{Level: LevelCategory, Key: category}
	}
	si := findSubcategory(doc[ci], subcategory)
	if si < 0 {
		return nil, &NotFoundError{Level: LevelSubcategory, Key: subcategory}
	}
	pi := findPlacement(doc[ci].Subcategories[si], placement)
	if pi < 0 {
		return nil, &NotFoundError{Level: LevelPlacement, Key: placement}
	}
	return &doc[ci].Subcategories[si].Placements[pi], nil
}

func findCategory(doc Document, key string) int {
	for i := range doc {
		if doc[i].Name == key {
			return i
		}
	}
	return -1
}

func findSubcategory(cat Category, key string) int {
	for i := range cat.Subcategories {
		if cat.Subcategories[i].Name == key {
			return i
		}
	}
	return -1
}

func findPlacement(sub Subcategory, key string) int {
	for i := range sub.Placements {
		if sub.Placements[i].Name == key {
			return i
		}
	}
	return -1
}

// pathKey builds the flattened three-part hierarchy key used by the
// rebuild projection and the path index.
func pathKey(category, subcategory, placement string) string {
	return category + "||" + subcategory + "||" + placement
}

// PathIndex maps flattened hierarchy paths to their placement nodes for
// O(1) repeated lookups. The pointers alias the indexed document; the
// index is invalidated by any structural change to the tree.
type PathIndex map[string]*Placement

// BuildIndex walks the document once and indexes every placement.
func BuildIndex(doc Document) PathIndex {
	idx := make(PathIndex)
	for ci := range doc {
		cat := &doc[ci]
		for si := range cat.Subcategories {
			sub := &cat.Subcategories[si]
			for pi := range sub.Placements {
				idx[pathKey(cat.Name, sub.Name, sub.Placements[pi].Name)] = &sub.Placements[pi]
			}
		}
	}
	return idx
}

// Lookup returns the placement for the given path, or nil when absent.
func (idx PathIndex) Lookup(category, subcategory, placement string) *Placement {
	return idx[pathKey(category, subcategory, placement)]
}
