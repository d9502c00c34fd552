package history

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Operation is the kind of action an entry records.
type Operation string

const (
	OpEncrypt Operation = "ENCRYPT"
	OpDecrypt Operation = "DECRYPT"
	OpSign    Operation = "SIGN"
)

const (
	// PreviewLength is the number of characters kept from the input text.
	PreviewLength = 30

	minFrequency = 140.0
	maxFrequency = 150.0
)

// Entry is one recorded operation. Only a preview of the text is kept.
type Entry struct {
	ID        string    `json:"id" toml:"id" bson:"_id"`
	Frequency float64   `json:"frequency" toml:"frequency" bson:"frequency"`
	Operation Operation `json:"operation" toml:"operation" bson:"operation"`
	Transform string    `json:"transform" toml:"transform" bson:"transform"`
	Preview   string    `json:"preview" toml:"preview" bson:"preview"`
	CreatedAt time.Time `json:"created_at" toml:"created_at" bson:"created_at"`
}

// NewEntry builds an entry with a fresh ID, a random frequency in
// [140.00, 150.00) MHz and the preview of text.
func NewEntry(op Operation, transform, text string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Frequency: randomFrequency(),
		Operation: op,
		Transform: transform,
		Preview:   Preview(text),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// String renders the entry as a radio log line, with the time in the local
// zone:
//
//	143.27 MHz | ENCRYPT | caesar | attack at dawn [14:03:09]
func (e Entry) String() string {
	return fmt.Sprintf("%.2f MHz | %s | %s | %s [%s]", e.Frequency, e.Operation, e.Transform, e.Preview, e.CreatedAt.Local().Format("15:04:05"))
}

func randomFrequency() float64 {
	f := minFrequency + rand.Float64()*(maxFrequency-minFrequency)
	f = math.Floor(f*100) / 100
	return math.Min(f, maxFrequency-0.01)
}

// Preview returns the first PreviewLength characters of text, followed by
// "..." when text is longer.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n == PreviewLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	b.WriteString("...")
	return b.String()
}

// Filter returns the entries whose operation is one of ops, preserving
// order. With no ops every entry is returned.
func Filter(entries []Entry, ops ...Operation) []Entry {
	if len(ops) == 0 {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		for _, op := range ops {
			if e.Operation == op {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Transforms are the operations shown in the default history view.
var Transforms = []Operation{OpEncrypt, OpDecrypt}
