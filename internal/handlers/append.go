// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"capflyer/internal/draft"
	"capflyer/internal/flyer"
	"capflyer/internal/sanitize"
)

// appendRequest is the body of POST /api/append-product.
type appendRequest struct {
	BucketPath string         `json:"bucketPath"`
	Shop       string         `json:"shop"`
	Product    *flyer.Product `json:"product"`
}

// AppendProduct appends one product to the stored flyer for a shop. The
// whole stored document is downloaded, merged, and re-uploaded under the
// coordinator's per-path lock. A duplicate reports "exists", not an error.
func (a *API) AppendProduct(w http.ResponseWriter, r *http.Request) {
	if a.coord == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage not configured.")
		return
	}

	var req appendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Product == nil {
		writeError(w, http.StatusBadRequest, "Missing bucketPath, shop, or product.")
		return
	}
	p := prepareProduct(*req.Product)
	if msg := validateProduct(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	added, err := a.coord.AppendProduct(r.Context(), req.BucketPath, req.Shop, p)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	status := "exists"
	if added {
		status = "added"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// masterAppendRequest is the body of POST /api/master-products/append.
type masterAppendRequest struct {
	Country string         `json:"country"`
	Product *flyer.Product `json:"product"`
}

// MasterAppend appends one product to a country's master catalog,
// deduplicated by normalized name only.
func (a *API) MasterAppend(w http.ResponseWriter, r *http.Request) {
	if a.coord == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage not configured.")
		return
	}

	var req masterAppendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Product == nil {
		writeError(w, http.StatusBadRequest, "Missing country or product.")
		return
	}
	p := prepareProduct(*req.Product)
	if msg := validateProduct(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	added, total, path, err := a.coord.AppendMaster(r.Context(), req.Country, p)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"path":  path,
		"added": added,
		"total": total,
	})
}

// MasterSearch lists a country's master catalog products matching the q
// query parameter by normalized name; an empty q returns the whole list.
func (a *API) MasterSearch(w http.ResponseWriter, r *http.Request) {
	if a.coord == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage not configured.")
		return
	}

	country := r.URL.Query().Get("country")
	query := r.URL.Query().Get("q")
	products, path, err := a.coord.SearchMaster(r.Context(), country, query)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"path":     path,
		"total":    len(products),
		"products": products,
	})
}

// saveRequest is the body of POST /api/flyers. FileName is optional; when
// blank it is derived from the shop and the flyer validity window, the
// same way the entry form names downloads.
type saveRequest struct {
	BucketPath string `json:"bucketPath"`
	Shop       string `json:"shop"`
	FileName   string `json:"fileName"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
}

// SaveFlyer exports the current draft as a full document and stores it
// under a fresh file name (create-only; numbered suffixes are probed on
// collision, an existing flyer is never overwritten).
func (a *API) SaveFlyer(w http.ResponseWriter, r *http.Request) {
	if a.coord == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage not configured.")
		return
	}
	if a.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "Draft sessions unavailable.")
		return
	}

	var req saveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FileName == "" {
		req.FileName = sanitize.FlyerFileName(req.Shop, req.DateFrom, req.DateTo, time.Now())
	}

	data, _, err := a.drafts.Get(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot load draft.")
		return
	}
	if data == nil {
		data = &draft.Data{}
	}

	doc := a.exportDocument(data)
	path, err := a.coord.SaveFlyer(r.Context(), req.BucketPath, req.Shop, req.FileName, doc)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
