// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"errors"
	"fmt"

	"capflyer/internal/flyer"
)

// Kind is the machine-distinguishable class of a catalog failure. Kinds
// are part of the API contract — handlers map them to HTTP statuses and
// clients branch on them.
type Kind string

const (
	KindInvalidRequest      Kind = "invalid_request"
	KindCategoryNotFound    Kind = "category_not_found"
	KindSubcategoryNotFound Kind = "subcategory_not_found"
	KindPlacementNotFound   Kind = "placement_not_found"
	KindInvalidJSON         Kind = "invalid_json"
	KindDownloadFailed      Kind = "download_failed"
	KindUploadFailed        Kind = "upload_failed"
)

// Error carries a failure kind plus a human-readable detail. The wrapped
// cause, when present, is reachable through errors.Unwrap.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain, or "" for errors
// that did not originate in the catalog.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// notFoundKind maps a hierarchy lookup failure to its error kind.
func notFoundKind(level flyer.Level) Kind {
	switch level {
	case flyer.LevelCategory:
		return KindCategoryNotFound
	case flyer.LevelSubcategory:
		return KindSubcategoryNotFound
	default:
		return KindPlacementNotFound
	}
}
