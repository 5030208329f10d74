package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dentodent/content-api/internal/assets"
	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/store"
)

var (
	ErrBannerNotFound     = errors.New("banner not found")
	ErrBannerImageMissing = errors.New("banner image is required")
)

// BannerService handles positioned promotional slides.
type BannerService struct {
	store    store.Store
	resolver assets.Context
}

// NewBannerService creates a BannerService instance.
func NewBannerService(st store.Store, resolver assets.Context) *BannerService {
	return &BannerService{store: st, resolver: resolver}
}

// ListActive returns the banners an unauthenticated caller should see at the
// given instant: active, inside their scheduling window, carrying an image,
// ordered by display order ascending with insertion order breaking ties.
func (s *BannerService) ListActive(now time.Time) ([]content.Record, error) {
	all, err := s.listNormalized()
	if err != nil {
		return nil, err
	}

	out := make([]content.Record, 0, len(all))
	for _, rec := range all {
		if !content.BannerActive(rec, now) {
			continue
		}
		if strings.TrimSpace(recString(rec, "image_url")) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListAll returns every banner for the admin surface, same ordering.
func (s *BannerService) ListAll() ([]content.Record, error) {
	return s.listNormalized()
}

// Get returns one normalized banner regardless of its active state.
func (s *BannerService) Get(id int64) (content.Record, error) {
	rec, err := s.store.GetBanner(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return s.bannerView(rec, 0), nil
}

// Create validates and persists a new banner.
func (s *BannerService) Create(rec content.Record) (content.Record, error) {
	normalized := content.NormalizeBanner(content.StripID(rec), 0)
	if strings.TrimSpace(recString(normalized, "image_url")) == "" {
		return nil, ErrBannerImageMissing
	}

	created, err := s.store.CreateBanner(normalized)
	if err != nil {
		return nil, err
	}
	return s.bannerView(created, 0), nil
}

// Update applies a patch; fields the patch does not name keep their stored
// values.
func (s *BannerService) Update(id int64, rec content.Record) (content.Record, error) {
	patch := content.CanonicalizeBanner(content.StripID(rec))
	updated, err := s.store.UpdateBanner(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return s.bannerView(updated, 0), nil
}

// Delete removes a banner.
func (s *BannerService) Delete(id int64) (content.Record, error) {
	removed, err := s.store.DeleteBanner(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return s.bannerView(removed, 0), nil
}

func (s *BannerService) listNormalized() ([]content.Record, error) {
	list, err := s.store.ListBanners()
	if err != nil {
		return nil, err
	}

	out := make([]content.Record, 0, len(list))
	for i, rec := range list {
		out = append(out, s.bannerView(rec, i))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return content.BannerOrder(out[i]) < content.BannerOrder(out[j])
	})
	return out, nil
}

func (s *BannerService) bannerView(rec content.Record, index int) content.Record {
	out := content.NormalizeBanner(rec, index)
	out["image_url"] = assets.Resolve(s.resolver, recString(out, "image_url"))
	if mobile := recString(out, "mobile_image_url"); mobile != "" {
		out["mobile_image_url"] = assets.Resolve(s.resolver, mobile)
	}
	return out
}
