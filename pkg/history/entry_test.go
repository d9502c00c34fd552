package history

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "hello", "hello"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"counts runes", strings.Repeat("я", 35), strings.Repeat("я", 30) + "..."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.text); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEntry(t *testing.T) {
	for i := 0; i < 200; i++ {
		e := NewEntry(OpEncrypt, "caesar", "attack at dawn")
		if _, err := uuid.Parse(e.ID); err != nil {
			t.Fatalf("ID %q is not a UUID: %v", e.ID, err)
		}
		if e.Frequency < 140 || e.Frequency >= 150 {
			t.Fatalf("frequency %.2f outside [140, 150)", e.Frequency)
		}
		if scaled := e.Frequency * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Fatalf("frequency %v has more than two decimals", e.Frequency)
		}
		if e.CreatedAt.IsZero() || e.CreatedAt.Location().String() != "UTC" {
			t.Fatalf("CreatedAt = %v", e.CreatedAt)
		}
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{ID: "1", Operation: OpEncrypt},
		{ID: "2", Operation: OpSign},
		{ID: "3", Operation: OpDecrypt},
	}
	got := Filter(entries, Transforms...)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Filter(transforms) = %+v", got)
	}
	if got := Filter(entries); len(got) != 3 {
		t.Errorf("Filter() with no ops should keep everything, got %d", len(got))
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{
		Frequency: 143.5,
		Operation: OpDecrypt,
		Transform: "morse",
		Preview:   "SOS",
		CreatedAt: time.Date(2026, 1, 2, 14, 3, 9, 0, time.Local),
	}
	want := "143.50 MHz | DECRYPT | morse | SOS [14:03:09]"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
