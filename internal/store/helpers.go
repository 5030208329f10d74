package store

import (
	"strconv"
	"time"

	"github.com/dentodent/content-api/internal/content"
)

// recordID extracts a record's id. JSON round-trips turn numbers into
// float64, so every numeric spelling a backend can produce is accepted.
func recordID(rec content.Record) (int64, bool) {
	switch id := rec["id"].(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case uint:
		return int64(id), true
	case float64:
		return int64(id), true
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func recordString(rec content.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

// deepCopy clones a record so callers can never mutate stored state through
// a returned reference.
func deepCopy(rec content.Record) content.Record {
	out := make(content.Record, len(rec))
	for key, value := range rec {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopy(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return v
	}
}

func deepCopyList(list []content.Record) []content.Record {
	out := make([]content.Record, 0, len(list))
	for _, rec := range list {
		out = append(out, deepCopy(rec))
	}
	return out
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// nextID returns one past the highest id present in the list, so ids stay
// unique even after deletions.
func nextID(list []content.Record) int64 {
	var max int64
	for _, rec := range list {
		if id, ok := recordID(rec); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// newestFirst returns the list in reverse insertion order, matching the
// upload-recency ordering the relational backend gets from its timestamp
// column.
func newestFirst(list []content.Record) []content.Record {
	out := make([]content.Record, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, deepCopy(list[i]))
	}
	return out
}

func filterCategory(list []content.Record, category string) []content.Record {
	if category == "" {
		return list
	}
	out := make([]content.Record, 0, len(list))
	for _, rec := range list {
		if recordString(rec, "category") == category || recordString(rec, "section") == category {
			out = append(out, rec)
		}
	}
	return out
}
