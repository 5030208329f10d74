package service

import (
	"errors"
	"strings"

	"github.com/dentodent/content-api/internal/assets"
	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/store"
)

var (
	ErrMediaNotFound      = errors.New("media item not found")
	ErrMediaURLMissing    = errors.New("media url is required")
	ErrImageNotFound      = errors.New("image not found")
	ErrImageFieldsMissing = errors.New("image url and alt text are required")
)

// MediaService handles media and legacy image records: normalize on read,
// validate on write, resolve stored URLs before they leave the service.
type MediaService struct {
	store    store.Store
	resolver assets.Context
}

// NewMediaService creates a MediaService instance.
func NewMediaService(st store.Store, resolver assets.Context) *MediaService {
	return &MediaService{store: st, resolver: resolver}
}

// List returns normalized media records, optionally filtered by category.
func (s *MediaService) List(category string) ([]content.Record, error) {
	list, err := s.store.ListMedia(strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	out := make([]content.Record, 0, len(list))
	for _, rec := range list {
		out = append(out, s.mediaView(rec))
	}
	return out, nil
}

// Get returns one normalized media record.
func (s *MediaService) Get(id int64) (content.Record, error) {
	rec, err := s.store.GetMedia(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.mediaView(rec), nil
}

// Create validates and persists a new media record.
func (s *MediaService) Create(rec content.Record) (content.Record, error) {
	normalized := content.NormalizeMedia(content.StripID(rec))
	if strings.TrimSpace(recString(normalized, "url")) == "" {
		return nil, ErrMediaURLMissing
	}

	created, err := s.store.CreateMedia(normalized)
	if err != nil {
		return nil, err
	}
	return s.mediaView(created), nil
}

// Update applies a metadata patch. Aliases are collapsed but no defaults are
// filled in, so fields the patch does not name keep their stored values.
func (s *MediaService) Update(id int64, rec content.Record) (content.Record, error) {
	patch := content.CanonicalizeMedia(content.StripID(rec))
	updated, err := s.store.UpdateMedia(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.mediaView(updated), nil
}

// Delete removes a media record, along with its stored file when the backend
// owns file storage.
func (s *MediaService) Delete(id int64) (content.Record, error) {
	removed, err := s.store.DeleteMedia(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return s.mediaView(removed), nil
}

// ListImages returns normalized legacy image records.
func (s *MediaService) ListImages(category string) ([]content.Record, error) {
	list, err := s.store.ListImages(strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	out := make([]content.Record, 0, len(list))
	for _, rec := range list {
		out = append(out, s.imageView(rec))
	}
	return out, nil
}

// CreateImage validates and persists a legacy image record.
func (s *MediaService) CreateImage(rec content.Record) (content.Record, error) {
	normalized := content.NormalizeImage(content.StripID(rec))
	if strings.TrimSpace(recString(normalized, "url")) == "" ||
		strings.TrimSpace(recString(normalized, "alt")) == "" {
		return nil, ErrImageFieldsMissing
	}

	created, err := s.store.CreateImage(normalized)
	if err != nil {
		return nil, err
	}
	return s.imageView(created), nil
}

// DeleteImage removes a legacy image record.
func (s *MediaService) DeleteImage(id int64) (content.Record, error) {
	removed, err := s.store.DeleteImage(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return s.imageView(removed), nil
}

func (s *MediaService) mediaView(rec content.Record) content.Record {
	out := content.NormalizeMedia(rec)
	out["url"] = assets.Resolve(s.resolver, recString(out, "url"))
	return out
}

func (s *MediaService) imageView(rec content.Record) content.Record {
	out := content.NormalizeImage(rec)
	out["url"] = assets.Resolve(s.resolver, recString(out, "url"))
	return out
}

func recString(rec content.Record, key string) string {
	v, _ := rec[key].(string)
	return v
}
