// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import "capflyer/internal/normalize"

// MatchMode selects the duplicate-detection policy.
type MatchMode int

const (
	// MatchStrict treats two products as duplicates only when their
	// normalized names are equal AND all three hierarchy keys match
	// exactly. Used when appending into a retailer's own flyer, so two
	// items sharing a name in different aisles stay distinct.
	MatchStrict MatchMode = iota

	// MatchLoose compares normalized names alone, with internal
	// whitespace collapsed. Used for the cross-retailer master catalog,
	// which is keyed purely by product identity.
	MatchLoose
)

// Match reports whether candidate duplicates existing under the given
// mode. It is a pure predicate; neither product is modified.
func Match(existing, candidate Product, mode MatchMode) bool {
	switch mode {
	case MatchLoose:
		return normalize.LooseKey(existing.Name) == normalize.LooseKey(candidate.Name)
	default:
		return normalize.Key(existing.Name) == normalize.Key(candidate.Name) &&
			existing.Category == candidate.Category &&
			existing.Subcategory == candidate.Subcategory &&
			existing.Placement == candidate.Placement
	}
}

// ContainsMatch reports whether any product in list duplicates candidate
// under the given mode.
func ContainsMatch(list []Product, candidate Product, mode MatchMode) bool {
	for _, p := range list {
		if Match(p, candidate, mode) {
			return true
		}
	}
	return false
}
