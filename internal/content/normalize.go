package content

import (
	"strconv"
	"strings"
	"time"
)

// Record is a loosely-typed JSON object in whatever shape a historical
// version of the API produced it.
type Record = map[string]any

// aliasRule maps one canonical field onto the historical key spellings that
// may carry its value. The canonical name is always the first alias so that
// normalizing twice is a no-op. Adding a future alias is a data change here,
// not new control flow.
type aliasRule struct {
	canonical string
	aliases   []string
}

var bannerAliases = []aliasRule{
	{"title", []string{"title", "name"}},
	{"subtitle", []string{"subtitle"}},
	{"image_url", []string{"image_url", "imageUrl", "image", "url"}},
	{"mobile_image_url", []string{"mobile_image_url", "mobileImageUrl"}},
	{"link_url", []string{"link_url", "linkUrl"}},
	{"link_label", []string{"link_label", "linkLabel", "cta"}},
	{"alt_text", []string{"alt_text", "alt"}},
	{"position", []string{"position"}},
	{"display_order", []string{"display_order", "displayOrder", "order"}},
	{"is_active", []string{"is_active", "isActive", "active"}},
	{"start_date", []string{"start_date", "startDate"}},
	{"end_date", []string{"end_date", "endDate"}},
	{"created_at", []string{"created_at", "createdAt"}},
	{"updated_at", []string{"updated_at", "updatedAt"}},
}

var mediaAliases = []aliasRule{
	{"title", []string{"title"}},
	{"caption", []string{"caption"}},
	{"alt_text", []string{"alt_text", "alt"}},
	{"url", []string{"url", "image_url", "imageUrl", "image", "path"}},
	{"file_path", []string{"file_path", "filePath", "path"}},
	{"category", []string{"category", "section"}},
	{"file_type", []string{"file_type", "fileType", "mimetype"}},
	{"file_size", []string{"file_size", "fileSize", "size"}},
	{"original_name", []string{"original_name", "originalName"}},
	{"tags", []string{"tags"}},
	{"width", []string{"width", "image_width"}},
	{"height", []string{"height", "image_height"}},
	{"uploaded_at", []string{"uploaded_at", "uploadedAt"}},
	{"updated_at", []string{"updated_at", "updatedAt"}},
}

var imageAliases = []aliasRule{
	{"url", []string{"url", "image_url", "imageUrl", "path"}},
	{"alt", []string{"alt", "alt_text", "name"}},
	{"category", []string{"category", "section"}},
	{"uploaded_at", []string{"uploaded_at", "uploadedAt"}},
}

const (
	// DefaultCategory groups media that was stored without one.
	DefaultCategory = "general"
	// DefaultPosition is the banner placement used when none is stored.
	DefaultPosition = "homepage"
	// DefaultAltText stands in for banners saved without accessible text.
	DefaultAltText = "Banner"
)

// NormalizeBanner maps a raw banner record in any historical shape onto the
// canonical field names. index is the record's position in its source list
// and becomes the display order when none was stored. Unknown fields pass
// through unchanged.
func NormalizeBanner(raw Record, index int) Record {
	rec := applyAliases(raw, bannerAliases)

	if _, ok := rec["title"]; !ok {
		rec["title"] = ""
	}
	if _, ok := rec["subtitle"]; !ok {
		rec["subtitle"] = ""
	}
	if _, ok := rec["image_url"]; !ok {
		rec["image_url"] = ""
	}
	if _, ok := rec["link_url"]; !ok {
		rec["link_url"] = ""
	}
	if _, ok := rec["link_label"]; !ok {
		rec["link_label"] = ""
	}
	if s, ok := toString(rec["alt_text"]); !ok || s == "" {
		rec["alt_text"] = DefaultAltText
	}
	if s, ok := toString(rec["position"]); !ok || s == "" {
		rec["position"] = DefaultPosition
	}

	if order, ok := toInt(rec["display_order"]); ok {
		rec["display_order"] = order
	} else {
		rec["display_order"] = index
	}
	if active, ok := toBool(rec["is_active"]); ok {
		rec["is_active"] = active
	} else {
		rec["is_active"] = true
	}

	return rec
}

// CanonicalizeBanner collapses historical aliases onto canonical keys
// without applying defaults, so a partial update only touches the fields it
// names.
func CanonicalizeBanner(raw Record) Record {
	return applyAliases(raw, bannerAliases)
}

// CanonicalizeMedia is the alias-only counterpart of NormalizeMedia.
func CanonicalizeMedia(raw Record) Record {
	return applyAliases(raw, mediaAliases)
}

// NormalizeBanners normalizes every record of a banner list, feeding each
// record's position in as its fallback display order.
func NormalizeBanners(raw []Record) []Record {
	out := make([]Record, 0, len(raw))
	for i, rec := range raw {
		out = append(out, NormalizeBanner(rec, i))
	}
	return out
}

// NormalizeMedia maps a raw media record onto the canonical shape.
func NormalizeMedia(raw Record) Record {
	rec := applyAliases(raw, mediaAliases)

	for _, key := range []string{"title", "caption", "alt_text", "url", "file_path", "file_type", "original_name"} {
		if _, ok := rec[key]; !ok {
			rec[key] = ""
		}
	}
	if s, ok := toString(rec["category"]); !ok || s == "" {
		rec["category"] = DefaultCategory
	}
	if size, ok := toInt64(rec["file_size"]); ok {
		rec["file_size"] = size
	} else {
		rec["file_size"] = int64(0)
	}
	rec["tags"] = toStringSlice(rec["tags"])

	if w, ok := toInt(rec["width"]); ok {
		rec["width"] = w
	}
	if h, ok := toInt(rec["height"]); ok {
		rec["height"] = h
	}

	return rec
}

// NormalizeImage maps a raw legacy image record onto the canonical shape.
func NormalizeImage(raw Record) Record {
	rec := applyAliases(raw, imageAliases)

	if _, ok := rec["url"]; !ok {
		rec["url"] = ""
	}
	if _, ok := rec["alt"]; !ok {
		rec["alt"] = ""
	}
	if s, ok := toString(rec["category"]); !ok || s == "" {
		rec["category"] = DefaultCategory
	}

	return rec
}

// applyAliases copies raw into a fresh record, collapsing every alias group
// onto its canonical key. The first alias with a non-nil value wins; all
// spent alias keys are dropped so stale spellings cannot survive a rewrite.
func applyAliases(raw Record, rules []aliasRule) Record {
	consumed := make(map[string]bool)
	for _, rule := range rules {
		for _, alias := range rule.aliases {
			consumed[alias] = true
		}
	}

	rec := make(Record, len(raw))
	for key, value := range raw {
		if !consumed[key] {
			rec[key] = value
		}
	}

	for _, rule := range rules {
		for _, alias := range rule.aliases {
			value, ok := raw[alias]
			if !ok || value == nil {
				continue
			}
			rec[rule.canonical] = value
			break
		}
	}

	return rec
}

// BannerActive reports whether a normalized banner should be shown to
// unauthenticated callers at the given instant: the active flag must be set
// and now must fall inside the optional scheduling window.
func BannerActive(rec Record, now time.Time) bool {
	active, ok := toBool(rec["is_active"])
	if ok && !active {
		return false
	}
	if start, ok := ParseDate(rec["start_date"]); ok && now.Before(start) {
		return false
	}
	if end, ok := ParseDate(rec["end_date"]); ok && now.After(end) {
		return false
	}
	return true
}

// BannerOrder returns the normalized display order of a banner record.
func BannerOrder(rec Record) int {
	order, _ := toInt(rec["display_order"])
	return order
}

// BoolOr reads a loosely-typed boolean field, falling back when the value is
// absent or unreadable.
func BoolOr(v any, fallback bool) bool {
	if b, ok := toBool(v); ok {
		return b
	}
	return fallback
}

// ParseDate reads a scheduling date in any format the system has stored.
func ParseDate(v any) (time.Time, bool) {
	s, ok := toString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case int64:
		return b != 0, true
	}
	return false, false
}

func toInt(v any) (int, bool) {
	n, ok := toInt64(v)
	return int(n), ok
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func toStringSlice(v any) []string {
	switch tags := v.(type) {
	case []string:
		return tags
	case []any:
		out := make([]string, 0, len(tags))
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(tags) == "" {
			return []string{}
		}
		parts := strings.Split(tags, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	return []string{}
}
