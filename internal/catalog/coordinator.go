// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog coordinates persistence of flyer documents and the
// master product catalog against object storage. Every write is a
// read-modify-write of a whole object, serialized per storage path and
// fail-closed: a stored object that cannot be downloaded or parsed is
// never overwritten.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"capflyer/internal/flyer"
	"capflyer/internal/normalize"
	"capflyer/internal/sanitize"
	"capflyer/internal/storage"
)

// basePrefix roots every stored object under the data folder of the bucket.
const basePrefix = "databazy"

// maxSaveAttempts bounds the file-name probe for create-only saves.
const maxSaveAttempts = 20

// masterFiles maps supported country codes to their master catalog files.
var masterFiles = map[string]string{
	"sk": "slovakia",
	"cz": "czechia",
	"pl": "poland",
}

// ObjectStore is the storage surface the coordinator needs. It is
// satisfied by storage.Client and by in-memory fakes in tests.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
	Create(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Coordinator owns all writes to the stored catalog objects. At most one
// read-modify-write cycle runs per object path at a time.
type Coordinator struct {
	store ObjectStore
	locks *keyLocks
}

// New creates a coordinator over the given object store.
func New(store ObjectStore) *Coordinator {
	return &Coordinator{store: store, locks: newKeyLocks()}
}

// AppendProduct downloads the stored flyer for folder/shop, merges the
// product into its placement, and re-uploads the whole document. A strict
// duplicate is a successful no-op reported as added=false. The write is
// aborted entirely when the stored object cannot be read or parsed.
func (c *Coordinator) AppendProduct(ctx context.Context, folder, shop string, product flyer.Product) (added bool, err error) {
	safeFolder := sanitize.Segment(folder)
	safeShop := sanitize.Segment(shop)
	if safeFolder == "" || safeShop == "" {
		return false, &Error{Kind: KindInvalidRequest, Detail: "missing bucket path or shop"}
	}
	if strings.TrimSpace(product.Name) == "" {
		return false, &Error{Kind: KindInvalidRequest, Detail: "missing product name"}
	}

	path := basePrefix + "/" + safeFolder + "/" + safeShop + ".json"

	// Serialize the whole download→merge→upload cycle per object path so a
	// concurrent append observes this one's result instead of a stale read.
	release := c.locks.acquire(path)
	defer release()

	data, err := c.store.Download(ctx, path)
	if err != nil {
		return false, &Error{Kind: KindDownloadFailed, Detail: "cannot download " + path, Err: err}
	}

	doc, err := flyer.DecodeDocument(data)
	if err != nil {
		return false, &Error{Kind: KindInvalidJSON, Detail: path + " is not a valid flyer document", Err: err}
	}

	merged, outcome, err := flyer.MergeProduct(doc, product, nil)
	if err != nil {
		var nf *flyer.NotFoundError
		if errors.As(err, &nf) {
			return false, &Error{Kind: notFoundKind(nf.Level), Detail: err.Error(), Err: err}
		}
		return false, &Error{Kind: KindInvalidRequest, Detail: "merge failed", Err: err}
	}
	if outcome == flyer.OutcomeExists {
		slog.Info("product already present", "path", path, "product", product.Name)
		return false, nil
	}

	out, err := flyer.Encode(merged)
	if err != nil {
		return false, &Error{Kind: KindInvalidJSON, Detail: "cannot serialize merged document", Err: err}
	}
	if err := c.store.Upload(ctx, path, out); err != nil {
		return false, &Error{Kind: KindUploadFailed, Detail: "cannot upload " + path, Err: err}
	}

	slog.Info("product appended", "path", path, "product", product.Name)
	return true, nil
}

// AppendMaster merges a product into the country's master catalog,
// deduplicated by normalized name only. Returns whether the product was
// added, the catalog size after the call, and the storage path.
func (c *Coordinator) AppendMaster(ctx context.Context, country string, product flyer.Product) (added bool, total int, path string, err error) {
	country = strings.ToLower(strings.TrimSpace(country))
	file, ok := masterFiles[country]
	if !ok {
		return false, 0, "", &Error{Kind: KindInvalidRequest, Detail: "invalid country, use sk/cz/pl"}
	}
	if strings.TrimSpace(product.Name) == "" {
		return false, 0, "", &Error{Kind: KindInvalidRequest, Detail: "missing product name"}
	}

	path = basePrefix + "/" + country + "/" + file + ".json"

	release := c.locks.acquire(path)
	defer release()

	data, err := c.store.Download(ctx, path)
	if err != nil {
		// Never overwrite a master catalog we could not read.
		return false, 0, path, &Error{Kind: KindDownloadFailed, Detail: "cannot download existing master " + path, Err: err}
	}

	master, err := flyer.DecodeMaster(data)
	if err != nil {
		return false, 0, path, &Error{Kind: KindInvalidJSON, Detail: path + " is not a valid master catalog", Err: err}
	}

	if flyer.ContainsMatch(master.Products, product, flyer.MatchLoose) {
		return false, len(master.Products), path, nil
	}

	master.Products = append(master.Products, product)
	out, err := flyer.Encode(master)
	if err != nil {
		return false, 0, path, &Error{Kind: KindInvalidJSON, Detail: "cannot serialize master catalog", Err: err}
	}
	if err := c.store.Upload(ctx, path, out); err != nil {
		return false, 0, path, &Error{Kind: KindUploadFailed, Detail: "cannot upload " + path, Err: err}
	}

	slog.Info("master product appended", "path", path, "product", product.Name, "total", len(master.Products))
	return true, len(master.Products), path, nil
}

// SearchMaster returns the master catalog products of a country whose
// names match the query (case- and diacritic-insensitive containment, with
// a punctuation-stripped fallback). An empty query returns the whole
// catalog.
func (c *Coordinator) SearchMaster(ctx context.Context, country, query string) ([]flyer.Product, string, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	file, ok := masterFiles[country]
	if !ok {
		return nil, "", &Error{Kind: KindInvalidRequest, Detail: "invalid country, use sk/cz/pl"}
	}

	path := basePrefix + "/" + country + "/" + file + ".json"

	data, err := c.store.Download(ctx, path)
	if err != nil {
		return nil, path, &Error{Kind: KindDownloadFailed, Detail: "cannot download master " + path, Err: err}
	}
	master, err := flyer.DecodeMaster(data)
	if err != nil {
		return nil, path, &Error{Kind: KindInvalidJSON, Detail: path + " is not a valid master catalog", Err: err}
	}

	matched := make([]flyer.Product, 0, len(master.Products))
	for _, p := range master.Products {
		if normalize.MatchesSearch(p.Name, query) {
			matched = append(matched, p)
		}
	}
	return matched, path, nil
}

// SaveFlyer stores a full document under folder/shop with create-only
// semantics. When fileName is taken, numbered variants are probed
// ("billa_01.09-07.09.2026_2.json", ...) up to a bounded number of
// attempts, so saving can never clobber a previously stored flyer.
func (c *Coordinator) SaveFlyer(ctx context.Context, folder, shop, fileName string, doc flyer.Document) (string, error) {
	safeFolder := sanitize.Segment(folder)
	safeShop := sanitize.Segment(shop)
	if safeFolder == "" {
		return "", &Error{Kind: KindInvalidRequest, Detail: "missing bucket path"}
	}
	if safeShop == "" {
		safeShop = "nezaradene"
	}
	base := strings.TrimSuffix(fileName, ".json")
	if base == "" {
		return "", &Error{Kind: KindInvalidRequest, Detail: "missing file name"}
	}

	out, err := flyer.Encode(doc)
	if err != nil {
		return "", &Error{Kind: KindInvalidJSON, Detail: "cannot serialize document", Err: err}
	}

	dir := basePrefix + "/" + safeFolder + "/" + safeShop + "/"
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		name := base
		if attempt > 1 {
			name = fmt.Sprintf("%s_%d", base, attempt)
		}
		path := dir + name + ".json"

		release := c.locks.acquire(path)
		exists, err := c.store.Exists(ctx, path)
		if err != nil {
			release()
			return "", &Error{Kind: KindUploadFailed, Detail: "cannot probe " + path, Err: err}
		}
		if exists {
			release()
			continue
		}

		err = c.store.Create(ctx, path, out)
		release()
		if errors.Is(err, storage.ErrObjectExists) {
			// Lost the race against another writer; try the next name.
			continue
		}
		if err != nil {
			return "", &Error{Kind: KindUploadFailed, Detail: "cannot upload " + path, Err: err}
		}

		slog.Info("flyer saved", "path", path, "products", doc.CountProducts())
		return path, nil
	}

	return "", &Error{Kind: KindUploadFailed, Detail: fmt.Sprintf("no unused file name for %q after %d attempts", base, maxSaveAttempts)}
}
