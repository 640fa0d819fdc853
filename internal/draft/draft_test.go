package draft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"capflyer/internal/flyer"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func draftProduct(name string) flyer.Product {
	return flyer.Product{
		Name:        name,
		Category:    "Pekáreň",
		Subcategory: "Chlieb",
		Placement:   "Rozne druhy",
	}
}

func TestEnsureCreatesAndRetrieves(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	data, id, err := store.Ensure(ctx, w, r)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if id == "" || data == nil || len(data.Entries) != 0 {
		t.Fatalf("Ensure() = (%+v, %q)", data, id)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != id {
		t.Fatalf("cookie not set correctly: %+v", cookies)
	}

	// A follow-up request carrying the cookie sees the same draft.
	data.Add(draftProduct("Chlieb"))
	if err := store.Save(ctx, id, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	got, gotID, err := store.Get(ctx, r2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotID != id || got == nil || len(got.Entries) != 1 || got.Entries[0].Product.Name != "Chlieb" {
		t.Fatalf("Get() = (%+v, %q), want the saved draft", got, gotID)
	}
}

func TestGetWithoutCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data, id, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if data != nil || id != "" {
		t.Errorf("Get() = (%+v, %q), want (nil, \"\")", data, id)
	}
}

func TestDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, id, err := store.Ensure(ctx, w, r)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(w.Result().Cookies()[0])
	w2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, w2, r2); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	if err := client.Get(ctx, keyPrefix+id).Err(); err != redis.Nil {
		t.Errorf("draft key still present after Destroy: %v", err)
	}
	cookies := w2.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("Destroy did not expire the cookie: %+v", cookies)
	}
}

func TestDataEntryOperations(t *testing.T) {
	d := &Data{}

	a := d.Add(draftProduct("Chlieb"))
	b := d.Add(draftProduct("Rožky"))
	c := d.Add(draftProduct("Bageta"))

	if len(d.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(d.Entries))
	}

	// Replace keeps position.
	if !d.Replace(b.ID, draftProduct("Rožky grahamové")) {
		t.Fatal("Replace returned false for existing entry")
	}
	if d.Entries[1].Product.Name != "Rožky grahamové" || d.Entries[1].ID != b.ID {
		t.Errorf("Replace moved or re-keyed the entry: %+v", d.Entries[1])
	}

	// Remove preserves order of the rest.
	if !d.Remove(a.ID) {
		t.Fatal("Remove returned false for existing entry")
	}
	if len(d.Entries) != 2 || d.Entries[0].ID != b.ID || d.Entries[1].ID != c.ID {
		t.Errorf("Remove broke entry order: %+v", d.Entries)
	}

	if d.Replace(uuid.New(), draftProduct("x")) {
		t.Error("Replace with unknown ID should return false")
	}
	if d.Remove(uuid.New()) {
		t.Error("Remove with unknown ID should return false")
	}

	got := d.Products()
	if len(got) != 2 || got[0].Name != "Rožky grahamové" || got[1].Name != "Bageta" {
		t.Errorf("Products() = %+v", got)
	}
}
