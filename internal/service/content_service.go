package service

import (
	"errors"
	"strings"

	"github.com/dentodent/content-api/internal/content"
	"github.com/dentodent/content-api/internal/store"
)

var (
	ErrSectionNotFound  = errors.New("content section not found")
	ErrSectionExists    = errors.New("content section already exists")
	ErrSectionIDMissing = errors.New("section id is required")
)

// ContentService persists named section payloads behind whichever backend is
// configured, unwrapping historical envelopes on both sides of the store.
type ContentService struct {
	store store.Store
}

// NewContentService creates a ContentService instance.
func NewContentService(st store.Store) *ContentService {
	return &ContentService{store: st}
}

// GetAll returns every section keyed by its id.
func (s *ContentService) GetAll() (map[string]content.Record, error) {
	sections, err := s.store.ListSections()
	if err != nil {
		return nil, err
	}
	out := make(map[string]content.Record, len(sections))
	for _, section := range sections {
		out[section.ID] = sectionView(section)
	}
	return out, nil
}

// Get returns a single normalized section.
func (s *ContentService) Get(sectionID string) (content.Record, error) {
	section, err := s.store.GetSection(sectionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return sectionView(*section), nil
}

// Upsert stores a section payload, creating it when absent. The caller's
// envelope and id fields are stripped before persisting so stored payloads
// never duplicate their own key and double-wrapping cannot accumulate.
func (s *ContentService) Upsert(sectionID string, payload content.Record) (content.Record, error) {
	id := strings.TrimSpace(sectionID)
	if id == "" {
		return nil, ErrSectionIDMissing
	}

	section, err := s.store.PutSection(id, sectionData(payload))
	if err != nil {
		return nil, err
	}
	return sectionView(*section), nil
}

// Create is the create-only variant of Upsert: an existing section is a
// conflict and stays untouched.
func (s *ContentService) Create(sectionID string, payload content.Record) (content.Record, error) {
	id := strings.TrimSpace(sectionID)
	if id == "" {
		return nil, ErrSectionIDMissing
	}

	if _, err := s.store.GetSection(id); err == nil {
		return nil, ErrSectionExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	section, err := s.store.PutSection(id, sectionData(payload))
	if err != nil {
		return nil, err
	}
	return sectionView(*section), nil
}

// Delete removes a section.
func (s *ContentService) Delete(sectionID string) error {
	err := s.store.DeleteSection(sectionID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSectionNotFound
	}
	return err
}

func sectionData(payload content.Record) content.Record {
	if payload == nil {
		return content.Record{}
	}
	return content.StripID(content.UnwrapEnvelope(payload))
}

// sectionView flattens a stored section into the shape clients consume: the
// payload fields beside an id, unwrapped one envelope level in case an old
// writer double-wrapped it.
func sectionView(section store.Section) content.Record {
	data := content.UnwrapEnvelope(section.Data)
	out := make(content.Record, len(data)+1)
	out["id"] = section.ID
	for key, value := range data {
		out[key] = value
	}
	return out
}
