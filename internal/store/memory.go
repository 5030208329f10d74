package store

import (
	"sync"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

// Memory is a process-lifetime backend for ephemeral and demo operation.
// Nothing survives a restart.
type Memory struct {
	mu       sync.Mutex
	sections map[string]*Section
	media    []content.Record
	images   []content.Record
	banners  []content.Record
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{sections: make(map[string]*Section)}
}

func (m *Memory) GetSection(sectionID string) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	section, ok := m.sections[sectionID]
	if !ok {
		return nil, ErrNotFound
	}
	return copySection(section), nil
}

func (m *Memory) ListSections() ([]Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Section, 0, len(m.sections))
	for _, section := range m.sections {
		out = append(out, *copySection(section))
	}
	return out, nil
}

func (m *Memory) PutSection(sectionID string, data content.Record) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	section, ok := m.sections[sectionID]
	if !ok {
		section = &Section{ID: sectionID, CreatedAt: now}
		m.sections[sectionID] = section
	}
	section.Data = deepCopy(data)
	section.UpdatedAt = now
	return copySection(section), nil
}

func (m *Memory) DeleteSection(sectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sections[sectionID]; !ok {
		return ErrNotFound
	}
	delete(m.sections, sectionID)
	return nil
}

func (m *Memory) ListMedia(category string) ([]content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newestFirst(filterCategory(m.media, category)), nil
}

func (m *Memory) GetMedia(id int64) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec := findByID(m.media, id); rec != nil {
		return deepCopy(rec), nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateMedia(rec content.Record) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := deepCopy(rec)
	created["id"] = nextID(m.media)
	created["uploaded_at"] = nowStamp()
	created["updated_at"] = nowStamp()
	m.media = append(m.media, created)
	return deepCopy(created), nil
}

func (m *Memory) UpdateMedia(id int64, rec content.Record) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated, err := patchByID(m.media, id, rec)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (m *Memory) DeleteMedia(id int64) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, rest, err := removeByID(m.media, id)
	if err != nil {
		return nil, err
	}
	m.media = rest
	return removed, nil
}

func (m *Memory) ListImages(category string) ([]content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newestFirst(filterCategory(m.images, category)), nil
}

func (m *Memory) CreateImage(rec content.Record) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := deepCopy(rec)
	created["id"] = nextID(m.images)
	created["uploaded_at"] = nowStamp()
	m.images = append(m.images, created)
	return deepCopy(created), nil
}

func (m *Memory) DeleteImage(id int64) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, rest, err := removeByID(m.images, id)
	if err != nil {
		return nil, err
	}
	m.images = rest
	return removed, nil
}

func (m *Memory) ListBanners() ([]content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopyList(m.banners), nil
}

func (m *Memory) GetBanner(id int64) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec := findByID(m.banners, id); rec != nil {
		return deepCopy(rec), nil
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateBanner(rec content.Record) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := deepCopy(rec)
	created["id"] = nextID(m.banners)
	created["created_at"] = nowStamp()
	created["updated_at"] = nowStamp()
	m.banners = append(m.banners, created)
	return deepCopy(created), nil
}

func (m *Memory) UpdateBanner(id int64, rec content.Record) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated, err := patchByID(m.banners, id, rec)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (m *Memory) DeleteBanner(id int64) (content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, rest, err := removeByID(m.banners, id)
	if err != nil {
		return nil, err
	}
	m.banners = rest
	return removed, nil
}

func (m *Memory) Ping() error {
	return nil
}

func copySection(section *Section) *Section {
	out := *section
	out.Data = deepCopy(section.Data)
	return &out
}

func findByID(list []content.Record, id int64) content.Record {
	for _, rec := range list {
		if recID, ok := recordID(rec); ok && recID == id {
			return rec
		}
	}
	return nil
}

// patchByID merges patch fields over the stored record in place, keeping the
// id and refreshing updated_at.
func patchByID(list []content.Record, id int64, patch content.Record) (content.Record, error) {
	rec := findByID(list, id)
	if rec == nil {
		return nil, ErrNotFound
	}
	for key, value := range patch {
		if key == "id" {
			continue
		}
		rec[key] = deepCopyValue(value)
	}
	rec["updated_at"] = nowStamp()
	return deepCopy(rec), nil
}

func removeByID(list []content.Record, id int64) (content.Record, []content.Record, error) {
	for i, rec := range list {
		if recID, ok := recordID(rec); ok && recID == id {
			rest := append(list[:i:i], list[i+1:]...)
			return rec, rest, nil
		}
	}
	return nil, nil, ErrNotFound
}
