package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dentodent/content-api/internal/content"
)

func contentServer(t *testing.T, hits *atomic.Int64, banners []content.Record) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/content", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]content.Record{
			"hero": {"id": "hero", "heading": "Welcome"},
		})
	})
	mux.HandleFunc("/api/banners", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(banners)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCacheLoadsOnce(t *testing.T) {
	var hits atomic.Int64
	srv := contentServer(t, &hits, nil)

	cache := New(srv.URL, nil)
	ctx := context.Background()

	if err := cache.Load(ctx); err != nil {
		t.Fatalf("failed to load cache: %v", err)
	}
	if err := cache.Load(ctx); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single fetch, got %d", got)
	}

	section, ok := cache.Section("hero")
	if !ok || section["heading"] != "Welcome" {
		t.Fatalf("unexpected cached section %v", section)
	}
	if _, ok := cache.Section("missing"); ok {
		t.Fatalf("expected missing section to be absent")
	}

	all := cache.Content()
	if len(all) != 1 {
		t.Fatalf("expected 1 cached section, got %d", len(all))
	}
}

func TestCacheRefreshRefetches(t *testing.T) {
	var hits atomic.Int64
	srv := contentServer(t, &hits, nil)

	cache := New(srv.URL, nil)
	ctx := context.Background()

	if err := cache.Load(ctx); err != nil {
		t.Fatalf("failed to load cache: %v", err)
	}
	if err := cache.Refresh(ctx); err != nil {
		t.Fatalf("failed to refresh cache: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 fetches after refresh, got %d", got)
	}
}

func TestCacheFiltersAndOrdersBanners(t *testing.T) {
	var hits atomic.Int64
	srv := contentServer(t, &hits, []content.Record{
		{"name": "second", "imageUrl": "/assets/b.jpg", "order": 2},
		{"title": "first", "image_url": "/assets/a.jpg", "display_order": 1},
		{"title": "hidden", "image_url": "/assets/c.jpg", "is_active": false},
	})

	cache := New(srv.URL, nil)
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("failed to load cache: %v", err)
	}

	banners := cache.Banners()
	if len(banners) != 2 {
		t.Fatalf("expected 2 active banners, got %d: %v", len(banners), banners)
	}
	if banners[0]["title"] != "first" || banners[1]["title"] != "second" {
		t.Fatalf("expected display order sorting, got %v then %v", banners[0]["title"], banners[1]["title"])
	}
	if banners[1]["image_url"] != "/assets/b.jpg" {
		t.Fatalf("expected aliased fields normalized, got %v", banners[1])
	}
}

func TestCacheUnavailableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cache := New(srv.URL, nil)
	err := cache.Load(context.Background())
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
	if cache.Loaded() {
		t.Fatalf("expected cache to stay unloaded after a failed fetch")
	}
	if !errors.Is(cache.Err(), ErrContentUnavailable) {
		t.Fatalf("expected recorded error state, got %v", cache.Err())
	}
}

func TestCacheUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cache := New(srv.URL, nil)
	if err := cache.Load(context.Background()); !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable for a dead server, got %v", err)
	}
}
