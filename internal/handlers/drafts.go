// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"capflyer/internal/draft"
	"capflyer/internal/flyer"
)

// requireDrafts guards the draft endpoints when Valkey is not configured.
func (a *API) requireDrafts(w http.ResponseWriter) bool {
	if a.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "Draft sessions unavailable.")
		return false
	}
	return true
}

// prepareProduct applies the entry-form cleanups the UI performs: prices
// get comma decimals, and a blank sale unit price is derived from the
// sale price and quantity when both parse.
func prepareProduct(p flyer.Product) flyer.Product {
	p.SalePrice = flyer.NormalizePrice(p.SalePrice)
	p.SaleUnitPrice = flyer.NormalizePrice(p.SaleUnitPrice)
	p.RegularPrice = flyer.NormalizePrice(p.RegularPrice)
	p.RegularUnitPrice = flyer.NormalizePrice(p.RegularUnitPrice)
	if p.SaleUnitPrice == "" {
		p.SaleUnitPrice = flyer.UnitPrice(p.SalePrice, p.Quantity)
	}
	return p
}

// exportDocument builds the full document a draft represents: the
// hierarchy template projected with the draft's entries, merged over the
// attached loaded flyer when one is present.
func (a *API) exportDocument(data *draft.Data) flyer.Document {
	rebuilt := flyer.Rebuild(a.hier, data.Products())
	if data.Loaded != nil {
		return flyer.MergeIntoLoaded(data.Loaded, rebuilt)
	}
	return rebuilt
}

// DraftList returns the session's entered products in entry order.
func (a *API) DraftList(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}
	data, _, err := a.drafts.Get(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot load draft.")
		return
	}
	if data == nil {
		data = &draft.Data{Entries: []draft.Entry{}}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": data.Entries})
}

// draftProductRequest is the body of draft product writes.
type draftProductRequest struct {
	Product *flyer.Product `json:"product"`
}

// DraftAdd appends a product to the draft. The placement is validated
// against the hierarchy template up front so a typo fails at entry time,
// not at export.
func (a *API) DraftAdd(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}

	var req draftProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Product == nil {
		writeError(w, http.StatusBadRequest, "Missing product.")
		return
	}
	p := prepareProduct(*req.Product)
	if msg := validateProduct(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := flyer.Locate(a.hier, p.Category, p.Subcategory, p.Placement); err != nil {
		writeLocateError(w, err)
		return
	}

	data, id, err := a.drafts.Ensure(r.Context(), w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot load draft.")
		return
	}

	entry := data.Add(p)
	if err := a.drafts.Save(r.Context(), id, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot save draft.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

// DraftUpdate replaces the product of an existing draft entry.
func (a *API) DraftUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id.")
		return
	}

	var req draftProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Product == nil {
		writeError(w, http.StatusBadRequest, "Missing product.")
		return
	}
	p := prepareProduct(*req.Product)
	if msg := validateProduct(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := flyer.Locate(a.hier, p.Category, p.Subcategory, p.Placement); err != nil {
		writeLocateError(w, err)
		return
	}

	data, draftID, err := a.drafts.Get(r.Context(), r)
	if err != nil || data == nil {
		writeError(w, http.StatusNotFound, "No draft in progress.")
		return
	}
	if !data.Replace(id, p) {
		writeError(w, http.StatusNotFound, "Entry not found.")
		return
	}
	if err := a.drafts.Save(r.Context(), draftID, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot save draft.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DraftRemove deletes a draft entry, preserving the order of the rest.
func (a *API) DraftRemove(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id.")
		return
	}

	data, draftID, err := a.drafts.Get(r.Context(), r)
	if err != nil || data == nil {
		writeError(w, http.StatusNotFound, "No draft in progress.")
		return
	}
	if !data.Remove(id) {
		writeError(w, http.StatusNotFound, "Entry not found.")
		return
	}
	if err := a.drafts.Save(r.Context(), draftID, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot save draft.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// DraftAttach stores a previously exported flyer in the draft; the
// preview and export merge new entries into it. The body is the document
// itself and must parse as one — fail-closed, like every other document
// read.
func (a *API) DraftAttach(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}

	var doc flyer.Document
	if !decodeBody(w, r, &doc) {
		return
	}

	data, id, err := a.drafts.Ensure(r.Context(), w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot load draft.")
		return
	}
	data.Loaded = doc
	if err := a.drafts.Save(r.Context(), id, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot save draft.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"products": doc.CountProducts(),
	})
}

// mergeLoadedRequest is the body of POST /api/draft/loaded/merge.
type mergeLoadedRequest struct {
	Product *flyer.Product `json:"product"`
	Origin  *originRef     `json:"origin"`
}

type originRef struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Placement   string `json:"placement"`
	Index       int    `json:"index"`
}

// DraftMergeLoaded edits the attached loaded document in place: a new
// product is appended to its placement, an edit with an origin replaces
// or moves the existing record. A move whose target placement does not
// resolve leaves the document untouched.
func (a *API) DraftMergeLoaded(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}

	var req mergeLoadedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Product == nil {
		writeError(w, http.StatusBadRequest, "Missing product.")
		return
	}
	p := prepareProduct(*req.Product)
	if msg := validateProduct(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	data, draftID, err := a.drafts.Get(r.Context(), r)
	if err != nil || data == nil {
		writeError(w, http.StatusNotFound, "No draft in progress.")
		return
	}
	if data.Loaded == nil {
		writeError(w, http.StatusBadRequest, "No loaded flyer attached.")
		return
	}

	var origin *flyer.Origin
	if req.Origin != nil {
		origin = &flyer.Origin{
			Category:    req.Origin.Category,
			Subcategory: req.Origin.Subcategory,
			Placement:   req.Origin.Placement,
			Index:       req.Origin.Index,
		}
	}

	merged, outcome, err := flyer.MergeProduct(data.Loaded, p, origin)
	if err != nil {
		writeLocateError(w, err)
		return
	}

	data.Loaded = merged
	if err := a.drafts.Save(r.Context(), draftID, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot save draft.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

// DraftPreview serves the document the draft currently represents, in
// the exact bytes an export would store.
func (a *API) DraftPreview(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}
	data, _, err := a.drafts.Get(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot load draft.")
		return
	}
	if data == nil {
		data = &draft.Data{}
	}
	writeDocument(w, a.exportDocument(data))
}

// DraftClear discards the draft entirely.
func (a *API) DraftClear(w http.ResponseWriter, r *http.Request) {
	if !a.requireDrafts(w) {
		return
	}
	if err := a.drafts.Destroy(r.Context(), w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "Cannot clear draft.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// writeLocateError maps a hierarchy lookup failure to a 400 with the
// level-specific error kind; anything else is a generic 400.
func writeLocateError(w http.ResponseWriter, err error) {
	var nf *flyer.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  string(nf.Level) + "_not_found",
			"detail": nf.Error(),
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
