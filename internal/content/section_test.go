package content

import (
	"reflect"
	"testing"
)

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload Record
		want    Record
	}{
		{
			name:    "plain payload untouched",
			payload: Record{"heading": "Welcome"},
			want:    Record{"heading": "Welcome"},
		},
		{
			name:    "data envelope unwrapped",
			payload: Record{"data": map[string]any{"heading": "Welcome"}},
			want:    Record{"heading": "Welcome"},
		},
		{
			name:    "envelope with id unwrapped",
			payload: Record{"id": "hero", "data": map[string]any{"heading": "Welcome"}},
			want:    Record{"heading": "Welcome"},
		},
		{
			name:    "data beside real content kept",
			payload: Record{"data": map[string]any{"x": 1}, "heading": "Welcome"},
			want:    Record{"data": map[string]any{"x": 1}, "heading": "Welcome"},
		},
		{
			name:    "data holding a non-object kept",
			payload: Record{"data": "just a string"},
			want:    Record{"data": "just a string"},
		},
		{
			name:    "only one level unwrapped",
			payload: Record{"data": map[string]any{"data": map[string]any{"heading": "deep"}}},
			want:    Record{"data": map[string]any{"heading": "deep"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnwrapEnvelope(tt.payload)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestStripID(t *testing.T) {
	got := StripID(Record{"id": 3, "section_id": "hero", "sectionId": "hero", "heading": "Welcome"})
	want := Record{"heading": "Welcome"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
