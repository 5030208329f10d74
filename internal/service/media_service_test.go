package service

import (
	"errors"
	"testing"

	"github.com/dentodent/content-api/internal/assets"
	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/store"
)

func TestMediaCreateRequiresURL(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	if _, err := svc.Create(content.Record{"title": "no url"}); !errors.Is(err, ErrMediaURLMissing) {
		t.Fatalf("expected ErrMediaURLMissing, got %v", err)
	}
	if _, err := svc.Create(content.Record{"imageUrl": "/assets/a.jpg"}); err != nil {
		t.Fatalf("expected aliased url to be accepted, got %v", err)
	}
}

func TestMediaCreateNormalizes(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	created, err := svc.Create(content.Record{
		"image_url": "/assets/uploads/x.jpg",
		"section":   "gallery",
		"mimetype":  "image/jpeg",
	})
	if err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	if created["url"] != "/assets/uploads/x.jpg" {
		t.Fatalf("expected canonical url key, got %v", created)
	}
	if created["category"] != "gallery" {
		t.Fatalf("expected section to become category, got %v", created["category"])
	}
	if created["file_type"] != "image/jpeg" {
		t.Fatalf("expected mimetype to become file_type, got %v", created["file_type"])
	}
}

func TestMediaListFiltersByCategory(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	for _, rec := range []content.Record{
		{"url": "/assets/a.jpg", "category": "clinic"},
		{"url": "/assets/b.jpg", "category": "team"},
	} {
		if _, err := svc.Create(rec); err != nil {
			t.Fatalf("failed to create media: %v", err)
		}
	}

	clinic, err := svc.List("clinic")
	if err != nil {
		t.Fatalf("failed to list media: %v", err)
	}
	if len(clinic) != 1 || clinic[0]["url"] != "/assets/a.jpg" {
		t.Fatalf("unexpected filtered list %v", clinic)
	}
}

func TestMediaUpdateIsPatch(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	created, err := svc.Create(content.Record{"url": "/assets/a.jpg", "title": "Before", "caption": "kept"})
	if err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	id := created["id"].(int64)

	updated, err := svc.Update(id, content.Record{"title": "After"})
	if err != nil {
		t.Fatalf("failed to update media: %v", err)
	}
	if updated["title"] != "After" || updated["caption"] != "kept" {
		t.Fatalf("expected patch semantics, got %v", updated)
	}
}

func TestMediaNotFound(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	if _, err := svc.Get(42); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
	if _, err := svc.Update(42, content.Record{}); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
	if _, err := svc.Delete(42); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestMediaViewResolvesURL(t *testing.T) {
	resolver := assets.Context{Mode: assets.ModeProduction, BaseURL: "https://api.example.com"}
	svc := NewMediaService(store.NewMemory(), resolver)

	created, err := svc.Create(content.Record{"url": "/assets/uploads/x.jpg"})
	if err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	if created["url"] != "https://api.example.com/assets/uploads/x.jpg" {
		t.Fatalf("expected resolved url, got %v", created["url"])
	}

	got, err := svc.Get(created["id"].(int64))
	if err != nil {
		t.Fatalf("failed to get media: %v", err)
	}
	if got["url"] != "https://api.example.com/assets/uploads/x.jpg" {
		t.Fatalf("expected resolved url on read, got %v", got["url"])
	}
}

func TestImageCreateValidation(t *testing.T) {
	svc := NewMediaService(store.NewMemory(), devResolver())

	if _, err := svc.CreateImage(content.Record{"url": "/assets/a.png"}); !errors.Is(err, ErrImageFieldsMissing) {
		t.Fatalf("expected ErrImageFieldsMissing without alt, got %v", err)
	}
	if _, err := svc.CreateImage(content.Record{"alt": "xray"}); !errors.Is(err, ErrImageFieldsMissing) {
		t.Fatalf("expected ErrImageFieldsMissing without url, got %v", err)
	}

	created, err := svc.CreateImage(content.Record{"url": "/assets/a.png", "alt": "xray"})
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}

	list, err := svc.ListImages("")
	if err != nil {
		t.Fatalf("failed to list images: %v", err)
	}
	if len(list) != 1 || list[0]["alt"] != "xray" {
		t.Fatalf("unexpected image list %v", list)
	}

	if _, err := svc.DeleteImage(created["id"].(int64)); err != nil {
		t.Fatalf("failed to delete image: %v", err)
	}
	if _, err := svc.DeleteImage(created["id"].(int64)); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound on double delete, got %v", err)
	}
}
