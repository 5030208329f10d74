// Package client provides a read-side cache over the content API for
// site frontends and server-rendered pages.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

// ErrContentUnavailable is returned when the API cannot be reached or
// responds with a non-success status.
var ErrContentUnavailable = errors.New("content service unavailable")

// Doer abstracts the HTTP client so tests can stub transport behavior.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache fetches site content and banners once and serves them from memory
// until Refresh is called. A failed fetch leaves the cache unloaded so the
// next Load retries.
type Cache struct {
	baseURL string
	client  Doer

	mu      sync.RWMutex
	loaded  bool
	lastErr error
	content map[string]content.Record
	banners []content.Record
}

// New returns a cache talking to the API at baseURL. A nil client falls
// back to a default HTTP client with a request timeout.
func New(baseURL string, client Doer) *Cache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Cache{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Load fetches content and banners unless a previous load already
// succeeded.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}

// Refresh re-fetches content and banners, replacing the cached copies. A
// failed fetch records the error so consumers can render a degraded state
// instead of treating the cache as current.
func (c *Cache) Refresh(ctx context.Context) error {
	sections := make(map[string]content.Record)
	if err := c.fetchJSON(ctx, "/api/content", &sections); err != nil {
		c.recordErr(err)
		return err
	}

	var rawBanners []content.Record
	if err := c.fetchJSON(ctx, "/api/banners", &rawBanners); err != nil {
		c.recordErr(err)
		return err
	}

	now := time.Now().UTC()
	banners := make([]content.Record, 0, len(rawBanners))
	for _, rec := range content.NormalizeBanners(rawBanners) {
		if content.BannerActive(rec, now) {
			banners = append(banners, rec)
		}
	}
	sort.SliceStable(banners, func(i, j int) bool {
		return content.BannerOrder(banners[i]) < content.BannerOrder(banners[j])
	})

	c.mu.Lock()
	c.content = sections
	c.banners = banners
	c.loaded = true
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

func (c *Cache) recordErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

// Loaded reports whether a fetch has succeeded.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Err returns the error from the most recent failed fetch, or nil when the
// cache is current.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Content returns all cached sections keyed by section id.
func (c *Cache) Content() map[string]content.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]content.Record, len(c.content))
	for id, rec := range c.content {
		out[id] = rec
	}
	return out
}

// Section returns one cached section and whether it exists.
func (c *Cache) Section(id string) (content.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.content[id]
	return rec, ok
}

// Banners returns the cached active banners in display order.
func (c *Cache) Banners() []content.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]content.Record, len(c.banners))
	copy(out, c.banners)
	return out
}

func (c *Cache) fetchJSON(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrContentUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
