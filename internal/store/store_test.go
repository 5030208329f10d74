package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

// testBackends builds one fresh instance of every backend so the same
// scenarios run against all of them.
func testBackends(t *testing.T) map[string]Store {
	t.Helper()

	file, err := NewFile(filepath.Join(t.TempDir(), "data"), "")
	if err != nil {
		t.Fatalf("failed to create file backend: %v", err)
	}

	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite backend: %v", err)
	}

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqliteStore,
	}
}

func mustRecordID(t *testing.T, rec content.Record) int64 {
	t.Helper()
	id, ok := recordID(rec)
	if !ok {
		t.Fatalf("record has no usable id: %v", rec)
	}
	return id
}

func TestSectionLifecycle(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.GetSection("hero"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for missing section, got %v", err)
			}

			first, err := st.PutSection("hero", content.Record{"heading": "Welcome"})
			if err != nil {
				t.Fatalf("failed to create section: %v", err)
			}
			if first.ID != "hero" {
				t.Fatalf("expected section id hero, got %q", first.ID)
			}
			if first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
				t.Fatalf("expected timestamps to be set, got %v / %v", first.CreatedAt, first.UpdatedAt)
			}

			second, err := st.PutSection("hero", content.Record{"heading": "Updated"})
			if err != nil {
				t.Fatalf("failed to upsert section: %v", err)
			}
			if second.Data["heading"] != "Updated" {
				t.Fatalf("expected upsert to replace data, got %v", second.Data)
			}
			if diff := second.CreatedAt.Sub(first.CreatedAt); diff < -time.Second || diff > time.Second {
				t.Fatalf("expected created_at to survive upsert, got %v vs %v", second.CreatedAt, first.CreatedAt)
			}
			if second.UpdatedAt.Before(first.UpdatedAt) {
				t.Fatalf("expected updated_at to move forward, got %v vs %v", second.UpdatedAt, first.UpdatedAt)
			}

			if _, err := st.PutSection("services", content.Record{"items": []any{"cleaning"}}); err != nil {
				t.Fatalf("failed to create second section: %v", err)
			}
			sections, err := st.ListSections()
			if err != nil {
				t.Fatalf("failed to list sections: %v", err)
			}
			if len(sections) != 2 {
				t.Fatalf("expected 2 sections, got %d", len(sections))
			}

			if err := st.DeleteSection("hero"); err != nil {
				t.Fatalf("failed to delete section: %v", err)
			}
			if _, err := st.GetSection("hero"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := st.DeleteSection("hero"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on double delete, got %v", err)
			}
		})
	}
}

func TestSectionUnknownFieldsSurviveStorage(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			payload := content.Record{
				"heading":      "Welcome",
				"legacy_field": "still here",
				"nested":       map[string]any{"deep": "value"},
			}
			if _, err := st.PutSection("hero", payload); err != nil {
				t.Fatalf("failed to store section: %v", err)
			}

			got, err := st.GetSection("hero")
			if err != nil {
				t.Fatalf("failed to load section: %v", err)
			}
			if got.Data["legacy_field"] != "still here" {
				t.Fatalf("expected unknown field to survive, got %v", got.Data)
			}
			nested, ok := got.Data["nested"].(map[string]any)
			if !ok || nested["deep"] != "value" {
				t.Fatalf("expected nested object to survive, got %v", got.Data["nested"])
			}
		})
	}
}

func TestMediaLifecycle(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.CreateMedia(content.Record{
				"title":    "Reception",
				"url":      "/assets/uploads/reception.jpg",
				"category": "clinic",
				"custom":   "kept",
			})
			if err != nil {
				t.Fatalf("failed to create media: %v", err)
			}
			id := mustRecordID(t, created)
			if id < 1 {
				t.Fatalf("expected positive id, got %d", id)
			}
			if s, _ := created["uploaded_at"].(string); s == "" {
				t.Fatalf("expected uploaded_at to be set, got %v", created["uploaded_at"])
			}

			got, err := st.GetMedia(id)
			if err != nil {
				t.Fatalf("failed to load media: %v", err)
			}
			if got["custom"] != "kept" {
				t.Fatalf("expected unknown field to survive, got %v", got)
			}

			updated, err := st.UpdateMedia(id, content.Record{"title": "Front desk"})
			if err != nil {
				t.Fatalf("failed to update media: %v", err)
			}
			if updated["title"] != "Front desk" {
				t.Fatalf("expected title patched, got %v", updated["title"])
			}
			if updated["url"] != "/assets/uploads/reception.jpg" {
				t.Fatalf("expected unpatched field kept, got %v", updated["url"])
			}
			if mustRecordID(t, updated) != id {
				t.Fatalf("expected id to survive patch, got %v", updated["id"])
			}

			removed, err := st.DeleteMedia(id)
			if err != nil {
				t.Fatalf("failed to delete media: %v", err)
			}
			if mustRecordID(t, removed) != id {
				t.Fatalf("expected removed record back, got %v", removed)
			}
			if _, err := st.GetMedia(id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if _, err := st.DeleteMedia(id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on double delete, got %v", err)
			}
			if _, err := st.UpdateMedia(id, content.Record{"title": "x"}); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound updating removed record, got %v", err)
			}
		})
	}
}

func TestMediaListOrderAndFilter(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range []content.Record{
				{"title": "first", "url": "/assets/a.jpg", "category": "clinic"},
				{"title": "second", "url": "/assets/b.jpg", "category": "team"},
				{"title": "third", "url": "/assets/c.jpg", "category": "clinic"},
			} {
				if _, err := st.CreateMedia(rec); err != nil {
					t.Fatalf("failed to create media: %v", err)
				}
			}

			all, err := st.ListMedia("")
			if err != nil {
				t.Fatalf("failed to list media: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 items, got %d", len(all))
			}
			if all[0]["title"] != "third" || all[2]["title"] != "first" {
				t.Fatalf("expected newest first, got %v then %v", all[0]["title"], all[2]["title"])
			}

			clinic, err := st.ListMedia("clinic")
			if err != nil {
				t.Fatalf("failed to filter media: %v", err)
			}
			if len(clinic) != 2 {
				t.Fatalf("expected 2 clinic items, got %d", len(clinic))
			}
			for _, rec := range clinic {
				if rec["category"] != "clinic" {
					t.Fatalf("expected only clinic items, got %v", rec["category"])
				}
			}

			none, err := st.ListMedia("nope")
			if err != nil {
				t.Fatalf("failed to filter media: %v", err)
			}
			if len(none) != 0 {
				t.Fatalf("expected empty result, got %d items", len(none))
			}
		})
	}
}

func TestImageLifecycle(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.CreateImage(content.Record{
				"url":      "/assets/uploads/xray.png",
				"alt":      "Panoramic x-ray",
				"category": "diagnostics",
			})
			if err != nil {
				t.Fatalf("failed to create image: %v", err)
			}
			id := mustRecordID(t, created)

			list, err := st.ListImages("")
			if err != nil {
				t.Fatalf("failed to list images: %v", err)
			}
			if len(list) != 1 || list[0]["alt"] != "Panoramic x-ray" {
				t.Fatalf("unexpected image list %v", list)
			}

			if _, err := st.DeleteImage(id); err != nil {
				t.Fatalf("failed to delete image: %v", err)
			}
			if _, err := st.DeleteImage(id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on double delete, got %v", err)
			}
		})
	}
}

func TestBannerLifecycle(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.CreateBanner(content.Record{
				"title":         "Summer special",
				"image_url":     "/assets/uploads/summer.jpg",
				"position":      "homepage",
				"display_order": 2,
				"is_active":     true,
			})
			if err != nil {
				t.Fatalf("failed to create banner: %v", err)
			}
			id := mustRecordID(t, created)

			got, err := st.GetBanner(id)
			if err != nil {
				t.Fatalf("failed to load banner: %v", err)
			}
			if got["title"] != "Summer special" {
				t.Fatalf("unexpected banner %v", got)
			}
			if content.BannerOrder(got) != 2 {
				t.Fatalf("expected display_order 2, got %v", got["display_order"])
			}
			if !content.BoolOr(got["is_active"], false) {
				t.Fatalf("expected active banner, got %v", got["is_active"])
			}

			updated, err := st.UpdateBanner(id, content.Record{"is_active": false})
			if err != nil {
				t.Fatalf("failed to update banner: %v", err)
			}
			if content.BoolOr(updated["is_active"], true) {
				t.Fatalf("expected banner deactivated, got %v", updated["is_active"])
			}
			if updated["title"] != "Summer special" {
				t.Fatalf("expected unpatched field kept, got %v", updated["title"])
			}

			removed, err := st.DeleteBanner(id)
			if err != nil {
				t.Fatalf("failed to delete banner: %v", err)
			}
			if mustRecordID(t, removed) != id {
				t.Fatalf("expected removed banner back, got %v", removed)
			}
			if _, err := st.GetBanner(id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestIDsStayUniqueAfterMiddleDelete(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := st.CreateBanner(content.Record{"title": "a", "image_url": "/assets/a.jpg"})
			if err != nil {
				t.Fatalf("failed to create banner: %v", err)
			}
			second, err := st.CreateBanner(content.Record{"title": "b", "image_url": "/assets/b.jpg"})
			if err != nil {
				t.Fatalf("failed to create banner: %v", err)
			}
			if _, err := st.DeleteBanner(mustRecordID(t, first)); err != nil {
				t.Fatalf("failed to delete banner: %v", err)
			}

			third, err := st.CreateBanner(content.Record{"title": "c", "image_url": "/assets/c.jpg"})
			if err != nil {
				t.Fatalf("failed to create banner: %v", err)
			}
			if mustRecordID(t, third) == mustRecordID(t, second) {
				t.Fatalf("expected a fresh id, got %d reused", mustRecordID(t, third))
			}
		})
	}
}

func TestPing(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Ping(); err != nil {
				t.Fatalf("expected healthy backend, got %v", err)
			}
		})
	}
}
