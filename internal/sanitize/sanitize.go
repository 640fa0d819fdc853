// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize produces safe storage path segments and flyer file
// names from user-entered shop and folder values.
package sanitize

import (
	"regexp"
	"strings"
	"time"

	"capflyer/internal/flyer"
)

var (
	// nonSegment matches anything not allowed in a storage path segment.
	nonSegment = regexp.MustCompile(`[^a-z0-9_-]`)
	// nonShop matches runs of characters not allowed in a shop key.
	nonShop = regexp.MustCompile(`[^a-z0-9._-]+`)
)

// Segment cleans a single storage path segment: lowercased, trimmed, and
// stripped to [a-z0-9_-]. An input with nothing valid left yields "".
func Segment(s string) string {
	return nonSegment.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), "")
}

// ShopKey cleans a shop name for use in file names: lowercased, with runs
// of disallowed characters collapsed to a single underscore and leading or
// trailing underscores dropped.
func ShopKey(s string) string {
	cleaned := nonShop.ReplaceAllString(strings.ToLower(s), "_")
	return strings.Trim(cleaned, "_")
}

// FlyerFileName builds the canonical flyer file name for a shop and a
// validity window: "<shop>_<DD.MM>-<DD.MM.YYYY>.json". The from date keeps
// only day and month; blank or unparsable dates fall back to now.
func FlyerFileName(shop, from, to string, now time.Time) string {
	fallback := flyer.FormatDate(now)
	if _, ok := flyer.ParseDate(from); !ok {
		from = fallback
	}
	if _, ok := flyer.ParseDate(to); !ok {
		to = fallback
	}

	fromShort := from
	if parts := strings.Split(from, "."); len(parts) == 3 {
		fromShort = parts[0] + "." + parts[1]
	}

	shopKey := ShopKey(shop)
	if shopKey == "" {
		shopKey = "letak"
	}
	return shopKey + "_" + fromShort + "-" + to + ".json"
}
