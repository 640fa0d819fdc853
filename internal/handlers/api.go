// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: appending products to stored
// flyers and the master catalog, saving new flyer files, and the draft
// editing endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"capflyer/internal/catalog"
	"capflyer/internal/draft"
	"capflyer/internal/flyer"
)

// maxBodySize caps request bodies. Flyer documents are text JSON; 4 MB is
// far beyond any real catalog.
const maxBodySize = 4 << 20

// API bundles the handler dependencies. Either coordinator or drafts may
// be nil when the backing service is not configured; the affected
// endpoints then respond 503.
type API struct {
	hier   flyer.Document
	coord  *catalog.Coordinator
	drafts *draft.Store
}

// NewAPI creates the API handler group.
func NewAPI(hier flyer.Document, coord *catalog.Coordinator, drafts *draft.Store) *API {
	return &API{hier: hier, coord: coord, drafts: drafts}
}

// decodeBody parses a JSON request body into dst with a size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeError writes a plain error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCatalogError maps a coordinator failure to its HTTP status and a
// payload carrying the machine-readable kind plus the human detail.
func writeCatalogError(w http.ResponseWriter, err error) {
	kind := catalog.KindOf(err)
	writeJSON(w, statusForKind(kind), map[string]string{
		"error":  string(kind),
		"detail": err.Error(),
	})
}

// statusForKind maps error kinds to HTTP statuses. Validation problems
// are the caller's fault (400), an unreadable source object is 404, and
// everything on the storage side is 500.
func statusForKind(kind catalog.Kind) int {
	switch kind {
	case catalog.KindInvalidRequest,
		catalog.KindCategoryNotFound,
		catalog.KindSubcategoryNotFound,
		catalog.KindPlacementNotFound:
		return http.StatusBadRequest
	case catalog.KindDownloadFailed:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeDocument writes a document in the persisted wire form (2-space
// indent) rather than the compact encoder form, so previews and exports
// are byte-identical to what storage receives.
func writeDocument(w http.ResponseWriter, doc flyer.Document) {
	data, err := flyer.Encode(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot serialize document.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Hierarchy serves the category tree template the UI files products into.
func (a *API) Hierarchy(w http.ResponseWriter, r *http.Request) {
	writeDocument(w, a.hier)
}
