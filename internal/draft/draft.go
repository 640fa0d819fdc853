// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package draft provides Valkey-backed draft editing sessions. A draft is
// the in-progress product list one user collects before exporting or
// saving a flyer; it is identified by a secure cookie and stored as JSON
// in Valkey with automatic TTL expiry. Each draft belongs to exactly one
// session — drafts are never shared across users.
package draft

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"capflyer/internal/flyer"
)

const (
	// CookieName is the name of the draft cookie sent to the browser.
	CookieName = "cf_draft"

	// DefaultTTL is how long an idle draft lives before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces draft keys in Valkey to avoid collisions.
	keyPrefix = "draft:"

	// idLength is the byte length of the random draft ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Entry is one product the user has entered, with a stable ID so it can
// be edited or removed.
type Entry struct {
	ID      uuid.UUID     `json:"id"`
	Product flyer.Product `json:"product"`
}

// Data is the draft payload stored in Valkey: the entered products in
// entry order plus an optionally attached previously loaded flyer that
// the export preview merges into.
type Data struct {
	Entries   []Entry        `json:"entries"`
	Loaded    flyer.Document `json:"loaded,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Products returns the entered products in entry order.
func (d *Data) Products() []flyer.Product {
	out := make([]flyer.Product, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Product
	}
	return out
}

// Add appends a product and returns its new entry.
func (d *Data) Add(p flyer.Product) Entry {
	e := Entry{ID: uuid.New(), Product: p}
	d.Entries = append(d.Entries, e)
	return e
}

// Replace swaps the product of the entry with the given ID, keeping its
// position. Returns false when no entry has that ID.
func (d *Data) Replace(id uuid.UUID, p flyer.Product) bool {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			d.Entries[i].Product = p
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given ID, preserving the order of the
// remaining entries. Returns false when no entry has that ID.
func (d *Data) Remove(id uuid.UUID) bool {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Store manages draft lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a draft store backed by the given Valkey client. With
// secure set, draft cookies are marked HTTPS-only.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Get retrieves the request's draft. A missing cookie or an expired draft
// yields (nil, "", nil) — no draft is not an error.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, "", nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("draft get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, "", fmt.Errorf("draft unmarshal: %w", err)
	}
	return &data, cookie.Value, nil
}

// Ensure returns the request's draft, creating an empty one (and setting
// the cookie) when none exists.
func (s *Store) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Data, string, error) {
	data, id, err := s.Get(ctx, r)
	if err != nil {
		return nil, "", err
	}
	if data != nil {
		return data, id, nil
	}

	id, err = generateID()
	if err != nil {
		return nil, "", fmt.Errorf("draft create: %w", err)
	}
	data = &Data{Entries: []Entry{}, CreatedAt: time.Now()}
	if err := s.Save(ctx, id, data); err != nil {
		return nil, "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return data, id, nil
}

// Save writes the draft back to Valkey and refreshes its TTL.
func (s *Store) Save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("draft marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft store: %w", err)
	}
	return nil
}

// Destroy removes the draft from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

// generateID creates a cryptographically random draft identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
