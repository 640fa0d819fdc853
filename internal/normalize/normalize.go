// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package normalize folds Central-European product names into canonical
// ASCII-comparable keys for fuzzy matching. It covers the Slovak, Czech,
// and Polish alphabets: diacritics are stripped via NFD decomposition, and
// letters with no decomposition (ł, ø, ß, ligatures) are folded through a
// fixed table first.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTable maps letters that canonical decomposition leaves untouched to
// their ASCII replacements. NFD handles everything else (á, č, ś, ż, ...).
var foldTable = map[rune]string{
	'ł': "l", 'Ł': "L",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
}

var (
	// stripMarks decomposes to NFD, drops combining marks, and recomposes.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	// whitespaceRuns matches one or more consecutive whitespace characters.
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// nonTight matches anything outside the tight-form alphabet.
	nonTight = regexp.MustCompile(`[^a-z0-9]`)
)

// Fold replaces table-mapped letters and strips combining diacritical marks.
// Case is preserved; use Key for the full canonical form.
func Fold(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := foldTable[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}

	out, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		// Transform failure leaves the table-folded form, which is still
		// comparable for the alphabets in scope.
		return b.String()
	}
	return out
}

// Key returns the canonical form used for duplicate detection: folded,
// lowercased, and trimmed. Key is idempotent.
func Key(s string) string {
	return strings.TrimSpace(strings.ToLower(Fold(s)))
}

// LooseKey is Key with internal whitespace runs collapsed to a single
// space. Master-catalog comparisons use it so manual entries that differ
// only in spacing still match.
func LooseKey(s string) string {
	return whitespaceRuns.ReplaceAllString(Key(s), " ")
}

// TightKey strips Key down to [a-z0-9], dropping spaces, punctuation, and
// hyphens. It is the fallback for search matching: "Coca-Cola 1,5l" and
// "coca cola 15 l" share the same tight form.
func TightKey(s string) string {
	return nonTight.ReplaceAllString(Key(s), "")
}

// MatchesSearch reports whether candidate matches the user's search query.
// An empty query matches everything. The loose canonical forms are compared
// by containment first; when that fails, the tight forms are compared so
// punctuation and spacing differences do not hide results.
func MatchesSearch(candidate, query string) bool {
	q := Key(query)
	if q == "" {
		return true
	}
	if strings.Contains(Key(candidate), q) {
		return true
	}
	tq := TightKey(query)
	return tq != "" && strings.Contains(TightKey(candidate), tq)
}
