package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/dentodent/content-api/internal/content"
)

// sectionRow keys the free-form section payload on a unique section id.
type sectionRow struct {
	ID        uint   `gorm:"primarykey"`
	SectionID string `gorm:"size:100;uniqueIndex;not null"`
	Data      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sectionRow) TableName() string { return "content_sections" }

// mediaRow stores the media payload as JSON with the category lifted into a
// column for filtering and the upload time for ordering.
type mediaRow struct {
	ID         uint   `gorm:"primarykey"`
	Category   string `gorm:"size:100;index"`
	Payload    string `gorm:"type:text"`
	UploadedAt time.Time
	UpdatedAt  time.Time
}

func (mediaRow) TableName() string { return "media_items" }

type imageRow struct {
	ID         uint   `gorm:"primarykey"`
	Category   string `gorm:"size:100;index"`
	Payload    string `gorm:"type:text"`
	UploadedAt time.Time
}

func (imageRow) TableName() string { return "images" }

// bannerRow lifts placement, ordering, the active flag and the scheduling
// window into columns; everything else lives in the JSON payload.
type bannerRow struct {
	ID           uint   `gorm:"primarykey"`
	Position     string `gorm:"size:100;index"`
	DisplayOrder int    `gorm:"index;default:0"`
	IsActive     bool   `gorm:"default:true"`
	StartDate    *time.Time
	EndDate      *time.Time
	Payload      string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (bannerRow) TableName() string { return "banners" }

// SQLite is the relational backend: one wide JSON column per entity plus
// structured columns for filtering and ordering.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating parent directories as needed) and migrates a
// sqlite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, unavailable("create database dir", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, unavailable("open database", err)
	}
	return NewSQLite(db)
}

// NewSQLite wraps an existing gorm connection and migrates the schema.
func NewSQLite(db *gorm.DB) (*SQLite, error) {
	if err := db.AutoMigrate(&sectionRow{}, &mediaRow{}, &imageRow{}, &bannerRow{}); err != nil {
		return nil, unavailable("migrate schema", err)
	}
	return &SQLite{db: db}, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	return err
}

func (s *SQLite) GetSection(sectionID string) (*Section, error) {
	var row sectionRow
	if err := s.db.Where("section_id = ?", sectionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load section", err)
	}
	return rowToSection(row)
}

func (s *SQLite) ListSections() ([]Section, error) {
	var rows []sectionRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, unavailable("list sections", err)
	}
	out := make([]Section, 0, len(rows))
	for _, row := range rows {
		section, err := rowToSection(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *section)
	}
	return out, nil
}

// PutSection upserts on the unique section id, leaving created_at alone on
// conflict.
func (s *SQLite) PutSection(sectionID string, data content.Record) (*Section, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, unavailable("encode section", err)
	}

	row := sectionRow{SectionID: sectionID, Data: string(payload)}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "section_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data":       string(payload),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, unavailable("upsert section", err)
	}

	return s.GetSection(sectionID)
}

func (s *SQLite) DeleteSection(sectionID string) error {
	result := s.db.Where("section_id = ?", sectionID).Delete(&sectionRow{})
	if result.Error != nil {
		return unavailable("delete section", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ListMedia(category string) ([]content.Record, error) {
	query := s.db.Model(&mediaRow{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var rows []mediaRow
	if err := query.Order("uploaded_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, unavailable("list media", err)
	}
	out := make([]content.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := mediaRowToRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *SQLite) GetMedia(id int64) (content.Record, error) {
	var row mediaRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load media", err)
	}
	return mediaRowToRecord(row)
}

func (s *SQLite) CreateMedia(rec content.Record) (content.Record, error) {
	payload, err := encodePayload(rec)
	if err != nil {
		return nil, err
	}
	row := mediaRow{
		Category:   recordString(rec, "category"),
		Payload:    payload,
		UploadedAt: time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, unavailable("create media", err)
	}
	return mediaRowToRecord(row)
}

func (s *SQLite) UpdateMedia(id int64, rec content.Record) (content.Record, error) {
	var row mediaRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load media", err)
	}

	merged, err := mergePayload(row.Payload, rec)
	if err != nil {
		return nil, err
	}
	row.Payload = merged
	if category := recordString(rec, "category"); category != "" {
		row.Category = category
	}
	row.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(&row).Error; err != nil {
		return nil, unavailable("update media", err)
	}
	return mediaRowToRecord(row)
}

func (s *SQLite) DeleteMedia(id int64) (content.Record, error) {
	var row mediaRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load media", err)
	}
	if err := s.db.Delete(&row).Error; err != nil {
		return nil, unavailable("delete media", err)
	}
	return mediaRowToRecord(row)
}

func (s *SQLite) ListImages(category string) ([]content.Record, error) {
	query := s.db.Model(&imageRow{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var rows []imageRow
	if err := query.Order("uploaded_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, unavailable("list images", err)
	}
	out := make([]content.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := imageRowToRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *SQLite) CreateImage(rec content.Record) (content.Record, error) {
	payload, err := encodePayload(rec)
	if err != nil {
		return nil, err
	}
	row := imageRow{
		Category:   recordString(rec, "category"),
		Payload:    payload,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, unavailable("create image", err)
	}
	return imageRowToRecord(row)
}

func (s *SQLite) DeleteImage(id int64) (content.Record, error) {
	var row imageRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load image", err)
	}
	if err := s.db.Delete(&row).Error; err != nil {
		return nil, unavailable("delete image", err)
	}
	return imageRowToRecord(row)
}

func (s *SQLite) ListBanners() ([]content.Record, error) {
	var rows []bannerRow
	if err := s.db.Order("display_order asc").Order("id asc").Find(&rows).Error; err != nil {
		return nil, unavailable("list banners", err)
	}
	out := make([]content.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := bannerRowToRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *SQLite) GetBanner(id int64) (content.Record, error) {
	var row bannerRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load banner", err)
	}
	return bannerRowToRecord(row)
}

func (s *SQLite) CreateBanner(rec content.Record) (content.Record, error) {
	payload, err := encodePayload(rec)
	if err != nil {
		return nil, err
	}
	row := bannerRow{
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	applyBannerColumns(&row, rec)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, unavailable("create banner", err)
	}
	return bannerRowToRecord(row)
}

func (s *SQLite) UpdateBanner(id int64, rec content.Record) (content.Record, error) {
	var row bannerRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load banner", err)
	}

	merged, err := mergePayload(row.Payload, rec)
	if err != nil {
		return nil, err
	}
	row.Payload = merged

	var full content.Record
	if err := json.Unmarshal([]byte(merged), &full); err != nil {
		return nil, unavailable("decode banner", err)
	}
	applyBannerColumns(&row, full)
	row.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(&row).Error; err != nil {
		return nil, unavailable("update banner", err)
	}
	return bannerRowToRecord(row)
}

func (s *SQLite) DeleteBanner(id int64) (content.Record, error) {
	var row bannerRow
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load banner", err)
	}
	if err := s.db.Delete(&row).Error; err != nil {
		return nil, unavailable("delete banner", err)
	}
	return bannerRowToRecord(row)
}

func (s *SQLite) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return unavailable("ping", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func rowToSection(row sectionRow) (*Section, error) {
	var data content.Record
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		return nil, unavailable("decode section", err)
	}
	return &Section{
		ID:        row.SectionID,
		Data:      data,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// encodePayload serializes a record without its id; the row is the id.
func encodePayload(rec content.Record) (string, error) {
	payload := deepCopy(rec)
	delete(payload, "id")
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", unavailable("encode record", err)
	}
	return string(raw), nil
}

func mergePayload(stored string, patch content.Record) (string, error) {
	var rec content.Record
	if stored != "" {
		if err := json.Unmarshal([]byte(stored), &rec); err != nil {
			return "", unavailable("decode record", err)
		}
	}
	if rec == nil {
		rec = content.Record{}
	}
	for key, value := range patch {
		if key == "id" {
			continue
		}
		rec[key] = value
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", unavailable("encode record", err)
	}
	return string(raw), nil
}

func mediaRowToRecord(row mediaRow) (content.Record, error) {
	rec, err := decodePayload(row.Payload)
	if err != nil {
		return nil, err
	}
	rec["id"] = int64(row.ID)
	if row.Category != "" {
		rec["category"] = row.Category
	}
	rec["uploaded_at"] = row.UploadedAt.UTC().Format(time.RFC3339Nano)
	rec["updated_at"] = row.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return rec, nil
}

func imageRowToRecord(row imageRow) (content.Record, error) {
	rec, err := decodePayload(row.Payload)
	if err != nil {
		return nil, err
	}
	rec["id"] = int64(row.ID)
	if row.Category != "" {
		rec["category"] = row.Category
	}
	rec["uploaded_at"] = row.UploadedAt.UTC().Format(time.RFC3339Nano)
	return rec, nil
}

func bannerRowToRecord(row bannerRow) (content.Record, error) {
	rec, err := decodePayload(row.Payload)
	if err != nil {
		return nil, err
	}
	rec["id"] = int64(row.ID)
	rec["position"] = row.Position
	rec["display_order"] = row.DisplayOrder
	rec["is_active"] = row.IsActive
	rec["created_at"] = row.CreatedAt.UTC().Format(time.RFC3339Nano)
	rec["updated_at"] = row.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return rec, nil
}

func decodePayload(payload string) (content.Record, error) {
	rec := content.Record{}
	if strings.TrimSpace(payload) == "" {
		return rec, nil
	}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, unavailable("decode record", err)
	}
	return rec, nil
}

func applyBannerColumns(row *bannerRow, rec content.Record) {
	row.Position = recordString(rec, "position")
	if row.Position == "" {
		row.Position = content.DefaultPosition
	}
	row.DisplayOrder = content.BannerOrder(rec)
	row.IsActive = content.BoolOr(rec["is_active"], true)
	row.StartDate = bannerDateColumn(rec, "start_date")
	row.EndDate = bannerDateColumn(rec, "end_date")
}

func bannerDateColumn(rec content.Record, key string) *time.Time {
	if t, ok := content.ParseDate(rec[key]); ok {
		return &t
	}
	return nil
}
