package codec

import (
	"context"
	"sort"
	"testing"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/observability"
	"github.com/matzehuels/snakecodec/pkg/script"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		tr      string
		dir     Direction
		text    string
		params  Params
		want    string
		wantErr errors.Code
	}{
		{"caesar encode", "caesar", Encode, "abc", Params{Shift: 3}, "def", ""},
		{"caesar decode", "caesar", Decode, "def", Params{Shift: 3}, "abc", ""},
		{"alias", "ROT-N", Encode, "A", Params{Shift: 1}, "B", ""},
		{"forced latin layout", "caesar", Encode, "Привет", Params{Shift: 1, Layout: script.LayoutLatin}, "Qsjwfu", ""},
		{"morse ignores shift", "morse", Encode, "E", Params{}, ".", ""},
		{"ascii code page", "ascii", Encode, "Я", Params{CodePage: "cp1251"}, "223", ""},
		{"unknown transform", "vigenere", Encode, "abc", Params{}, "", errors.ErrCodeUnknownTransform},
		{"shift too small", "caesar", Encode, "abc", Params{Shift: 0}, "", errors.ErrCodeOutOfRange},
		{"shift too large", "rot", Encode, "abc", Params{Shift: 26}, "", errors.ErrCodeOutOfRange},
		{"bad format", "base64", Decode, "!!", Params{}, "", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(ctx, tt.tr, tt.dir, tt.text, tt.params)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Run = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunDecodeBlankFailsForEveryTransform(t *testing.T) {
	for _, name := range Names() {
		for _, text := range []string{"", "   "} {
			_, err := Run(context.Background(), name, Decode, text, Params{Shift: 3})
			if !errors.Is(err, errors.ErrCodeEmptyInput) {
				t.Errorf("%s: decode %q error = %v, want EMPTY_INPUT", name, text, err)
			}
		}
	}
}

func TestRunEncodeEmptyReturnsEmpty(t *testing.T) {
	for _, name := range Names() {
		got, err := Run(context.Background(), name, Encode, "", Params{Shift: 3})
		if err != nil || got != "" {
			t.Errorf("%s: encode \"\" = %q, %v", name, got, err)
		}
	}
}

func TestRunRoundTripEveryTransform(t *testing.T) {
	const text = "Hello, World"
	want := map[string]string{
		NameMorse: "HELLO, WORLD",
		NameA1Z26: "HELLO, WORLD",
	}
	for _, name := range Names() {
		p := Params{Shift: 5}
		enc, err := Run(context.Background(), name, Encode, text, p)
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		dec, err := Run(context.Background(), name, Decode, enc, p)
		if err != nil {
			t.Fatalf("%s: decode %q: %v", name, enc, err)
		}
		expected, ok := want[name]
		if !ok {
			expected = text
		}
		if dec != expected {
			t.Errorf("%s: round trip = %q, want %q", name, dec, expected)
		}
	}
}

type recordingHooks struct {
	events []observability.TransformEvent
}

func (r *recordingHooks) OnTransform(_ context.Context, ev observability.TransformEvent) {
	r.events = append(r.events, ev)
}

func TestRunReportsToHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetTransformHooks(rec)
	defer observability.Reset()

	if _, err := Run(context.Background(), "b64", Encode, "hi", Params{}); err != nil {
		t.Fatal(err)
	}
	_, _ = Run(context.Background(), "binary", Decode, "2", Params{})

	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec.events))
	}
	first := rec.events[0]
	if first.Transform != NameBase64 || first.Direction != "encode" || first.InputLen != 2 || first.OutputLen != 4 || first.Err != nil {
		t.Errorf("unexpected first event %+v", first)
	}
	if rec.events[1].Err == nil {
		t.Error("second event should carry the decode error")
	}
}

func TestRegistry(t *testing.T) {
	list := List()
	if len(list) != 8 {
		t.Fatalf("List() has %d transforms, want 8", len(list))
	}
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, alias := range []string{"B64", " shift ", "Morse-Code", "codes"} {
		if _, ok := Lookup(alias); !ok {
			t.Errorf("Lookup(%q) failed", alias)
		}
	}
	if _, ok := Lookup("enigma"); ok {
		t.Error("Lookup(enigma) should fail")
	}

	caesar, _ := Lookup(NameCaesar)
	if !caesar.Needs().Has(NeedsShift | NeedsLayout) {
		t.Errorf("caesar needs = %b", caesar.Needs())
	}
	b32, _ := Lookup(NameBase32)
	if b32.Needs().Has(NeedsShift) {
		t.Error("base32 should not need a shift")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"encode", Encode, false},
		{"ENC", Encode, false},
		{"encrypt", Encode, false},
		{"d", Decode, false},
		{" decrypt ", Decode, false},
		{"sideways", Encode, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Encode.Flip() != Decode || Decode.Flip() != Encode {
		t.Error("Flip should swap directions")
	}
}
