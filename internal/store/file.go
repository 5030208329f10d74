package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

const (
	contentFile = "content.json"
	mediaFile   = "media.json"
	imagesFile  = "images.json"
	bannersFile = "banners.json"
)

// File persists each entity class as one JSON document under dataDir. Every
// call reads the document fully and every mutation rewrites it fully through
// a temp-file-then-rename, so a crash mid-write leaves the previous good
// state intact. publicDir is where uploaded files live; media and image
// deletes unlink the referenced file beneath it.
type File struct {
	mu        sync.Mutex
	dataDir   string
	publicDir string
}

// NewFile creates the storage directory tree on first use.
func NewFile(dataDir, publicDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, unavailable("create data dir", err)
	}
	return &File{dataDir: dataDir, publicDir: publicDir}, nil
}

func (f *File) GetSection(sectionID string) (*Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sections, err := f.loadSections()
	if err != nil {
		return nil, err
	}
	section, ok := sections[sectionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &section, nil
}

func (f *File) ListSections() ([]Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sections, err := f.loadSections()
	if err != nil {
		return nil, err
	}
	out := make([]Section, 0, len(sections))
	for _, section := range sections {
		out = append(out, section)
	}
	return out, nil
}

func (f *File) PutSection(sectionID string, data content.Record) (*Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sections, err := f.loadSections()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	section, ok := sections[sectionID]
	if !ok {
		section = Section{ID: sectionID, CreatedAt: now}
	}
	section.Data = deepCopy(data)
	section.UpdatedAt = now
	sections[sectionID] = section

	if err := f.writeJSON(contentFile, sections); err != nil {
		return nil, err
	}
	return &section, nil
}

func (f *File) DeleteSection(sectionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sections, err := f.loadSections()
	if err != nil {
		return err
	}
	if _, ok := sections[sectionID]; !ok {
		return ErrNotFound
	}
	delete(sections, sectionID)
	return f.writeJSON(contentFile, sections)
}

func (f *File) ListMedia(category string) ([]content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(mediaFile)
	if err != nil {
		return nil, err
	}
	return newestFirst(filterCategory(list, category)), nil
}

func (f *File) GetMedia(id int64) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(mediaFile)
	if err != nil {
		return nil, err
	}
	if rec := findByID(list, id); rec != nil {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (f *File) CreateMedia(rec content.Record) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(mediaFile)
	if err != nil {
		return nil, err
	}
	created := deepCopy(rec)
	created["id"] = nextID(list)
	created["uploaded_at"] = nowStamp()
	created["updated_at"] = nowStamp()
	list = append(list, created)
	if err := f.writeJSON(mediaFile, list); err != nil {
		return nil, err
	}
	return created, nil
}

func (f *File) UpdateMedia(id int64, rec content.Record) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(mediaFile)
	if err != nil {
		return nil, err
	}
	updated, err := patchByID(list, id, rec)
	if err != nil {
		return nil, err
	}
	if err := f.writeJSON(mediaFile, list); err != nil {
		return nil, err
	}
	return updated, nil
}

func (f *File) DeleteMedia(id int64) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(mediaFile)
	if err != nil {
		return nil, err
	}
	removed, rest, err := removeByID(list, id)
	if err != nil {
		return nil, err
	}
	if err := f.writeJSON(mediaFile, rest); err != nil {
		return nil, err
	}
	f.removeStoredFile(removed)
	return removed, nil
}

func (f *File) ListImages(category string) ([]content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(imagesFile)
	if err != nil {
		return nil, err
	}
	return newestFirst(filterCategory(list, category)), nil
}

func (f *File) CreateImage(rec content.Record) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(imagesFile)
	if err != nil {
		return nil, err
	}
	created := deepCopy(rec)
	created["id"] = nextID(list)
	created["uploaded_at"] = nowStamp()
	list = append(list, created)
	if err := f.writeJSON(imagesFile, list); err != nil {
		return nil, err
	}
	return created, nil
}

func (f *File) DeleteImage(id int64) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(imagesFile)
	if err != nil {
		return nil, err
	}
	removed, rest, err := removeByID(list, id)
	if err != nil {
		return nil, err
	}
	if err := f.writeJSON(imagesFile, rest); err != nil {
		return nil, err
	}
	f.removeStoredFile(removed)
	return removed, nil
}

func (f *File) ListBanners() ([]content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(bannersFile)
	if err != nil {
		return nil, err
	}
	return deepCopyList(list), nil
}

func (f *File) GetBanner(id int64) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(bannersFile)
	if err != nil {
		return nil, err
	}
	if rec := findByID(list, id); rec != nil {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (f *File) CreateBanner(rec content.Record) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(bannersFile)
	if err != nil {
		return nil, err
	}
	created := deepCopy(rec)
	created["id"] = nextID(list)
	created["created_at"] = nowStamp()
	created["updated_at"] = nowStamp()
	list = append(list, created)
	if err := f.writeJSON(bannersFile, list); err != nil {
		return nil, err
	}
	return created, nil
}

func (f *File) UpdateBanner(id int64, rec content.Record) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(bannersFile)
	if err != nil {
		return nil, err
	}
	updated, err := patchByID(list, id, rec)
	if err != nil {
		return nil, err
	}
	if err := f.writeJSON(bannersFile, list); err != nil {
		return nil, err
	}
	return updated, nil
}

func (f *File) DeleteBanner(id int64) (content.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.loadList(bannersFile)
	if err != nil {
		return nil, err
	}
	removed, rest, err := removeByID(list, id)
	if err != nil {
		return nil, err
	}
	if err := f.writeJSON(bannersFile, rest); err != nil {
		return nil, err
	}
	return removed, nil
}

func (f *File) Ping() error {
	info, err := os.Stat(f.dataDir)
	if err != nil {
		return unavailable("stat data dir", err)
	}
	if !info.IsDir() {
		return unavailable("stat data dir", os.ErrInvalid)
	}
	return nil
}

func (f *File) loadSections() (map[string]Section, error) {
	sections := make(map[string]Section)
	if err := f.readJSON(contentFile, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (f *File) loadList(name string) ([]content.Record, error) {
	var list []content.Record
	if err := f.readJSON(name, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (f *File) readJSON(name string, dst any) error {
	raw, err := os.ReadFile(filepath.Join(f.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return unavailable("read "+name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return unavailable("decode "+name, err)
	}
	return nil
}

// writeJSON replaces a document atomically: the new content goes to a temp
// file in the same directory first and only a successful write renames over
// the old document.
func (f *File) writeJSON(name string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return unavailable("encode "+name, err)
	}

	tmp, err := os.CreateTemp(f.dataDir, name+".tmp-*")
	if err != nil {
		return unavailable("write "+name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return unavailable("write "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return unavailable("write "+name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.dataDir, name)); err != nil {
		os.Remove(tmp.Name())
		return unavailable("write "+name, err)
	}
	return nil
}

// removeStoredFile unlinks the upload a deleted record pointed at, when the
// record references a path this backend owns. Best effort: the record is
// already gone and a missing file is not an error.
func (f *File) removeStoredFile(rec content.Record) {
	if f.publicDir == "" {
		return
	}
	ref := recordString(rec, "file_path")
	if ref == "" {
		ref = recordString(rec, "path")
	}
	if ref == "" {
		ref = recordString(rec, "url")
	}
	if !strings.HasPrefix(ref, "/assets/") {
		return
	}
	os.Remove(filepath.Join(f.publicDir, filepath.FromSlash(strings.TrimPrefix(ref, "/"))))
}
