// Package store defines the keyed persistence contract for content
// sections, media items, legacy images and banners, with three
// interchangeable implementations: in-memory, filesystem-JSON and
// sqlite/JSON-column.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable means the backend could not reach its medium. It is
	// never returned alongside a partially-written record.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Section is a named bucket of arbitrary structured content.
type Section struct {
	ID        string         `json:"id"`
	Data      content.Record `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store is the contract every backend implements. Records travel as loose
// JSON objects so historical field shapes survive storage untouched;
// reconciling them is the caller's job.
type Store interface {
	GetSection(sectionID string) (*Section, error)
	ListSections() ([]Section, error)
	// PutSection upserts: created_at is set only on first write and
	// updated_at always refreshes.
	PutSection(sectionID string, data content.Record) (*Section, error)
	DeleteSection(sectionID string) error

	ListMedia(category string) ([]content.Record, error)
	GetMedia(id int64) (content.Record, error)
	CreateMedia(rec content.Record) (content.Record, error)
	UpdateMedia(id int64, rec content.Record) (content.Record, error)
	// DeleteMedia returns the removed record; a backend that owns file
	// storage also removes the underlying file.
	DeleteMedia(id int64) (content.Record, error)

	ListImages(category string) ([]content.Record, error)
	CreateImage(rec content.Record) (content.Record, error)
	DeleteImage(id int64) (content.Record, error)

	ListBanners() ([]content.Record, error)
	GetBanner(id int64) (content.Record, error)
	CreateBanner(rec content.Record) (content.Record, error)
	UpdateBanner(id int64, rec content.Record) (content.Record, error)
	DeleteBanner(id int64) (content.Record, error)

	Ping() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
