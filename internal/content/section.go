package content

// UnwrapEnvelope removes one level of {"data": {...}} wrapping that some
// historical callers put around section payloads. A record only counts as an
// envelope when "data" holds an object and nothing else but an id travels
// beside it, so sections that legitimately contain a "data" field among
// other content are left alone.
func UnwrapEnvelope(payload Record) Record {
	inner, ok := payload["data"].(map[string]any)
	if !ok {
		return payload
	}
	for key := range payload {
		switch key {
		case "data", "id", "section_id", "sectionId":
		default:
			return payload
		}
	}
	return inner
}

// StripID returns a copy of the record without caller-supplied identity
// fields, so stored payloads never duplicate their own key.
func StripID(rec Record) Record {
	out := make(Record, len(rec))
	for key, value := range rec {
		switch key {
		case "id", "section_id", "sectionId":
		default:
			out[key] = value
		}
	}
	return out
}
