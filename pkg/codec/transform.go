package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/snakecodec/pkg/script"
)

// Direction selects encoding or decoding.
type Direction int

const (
	Encode Direction = iota
	Decode
)

func (d Direction) String() string {
	if d == Decode {
		return "decode"
	}
	return "encode"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Decode {
		return Encode
	}
	return Decode
}

// ParseDirection accepts "encode"/"decode" and the usual short and cipher
// spellings ("enc", "e", "encrypt", ...).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encode", "enc", "e", "encrypt":
		return Encode, nil
	case "decode", "dec", "d", "decrypt":
		return Decode, nil
	}
	return Encode, fmt.Errorf("unknown direction %q (want encode or decode)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Params carries the per-call settings. Each transform reads only the fields
// reported by its Needs.
type Params struct {
	Shift    int           `json:"shift,omitempty"`
	Layout   script.Layout `json:"layout"`
	CodePage string        `json:"code_page,omitempty"`
}

// Needs is a set of parameters a transform reads.
type Needs uint8

const (
	NeedsShift Needs = 1 << iota
	NeedsLayout
	NeedsCodePage
)

// Has reports whether n includes all of want.
func (n Needs) Has(want Needs) bool { return n&want == want }

// Transform is one reversible text transformation.
type Transform interface {
	// Name returns the canonical lowercase name.
	Name() string

	// Aliases returns alternative names accepted by Lookup.
	Aliases() []string

	// Description returns a one-line human description.
	Description() string

	// Needs reports which Params fields the transform reads.
	Needs() Needs

	Encode(text string, p Params) (string, error)
	Decode(text string, p Params) (string, error)
}

// base carries the descriptive half of a Transform.
type base struct {
	name        string
	aliases     []string
	description string
	needs       Needs
}

func (b base) Name() string        { return b.name }
func (b base) Aliases() []string   { return b.aliases }
func (b base) Description() string { return b.description }
func (b base) Needs() Needs        { return b.needs }

// Canonical transform names.
const (
	NameCaesar = "caesar"
	NameRot    = "rot"
	NameMorse  = "morse"
	NameBinary = "binary"
	NameASCII  = "ascii"
	NameA1Z26  = "a1z26"
	NameBase32 = "base32"
	NameBase64 = "base64"
)

type registry struct {
	byName map[string]Transform
	sorted []Transform
}

func newRegistry(transforms ...Transform) *registry {
	r := &registry{byName: make(map[string]Transform)}
	for _, t := range transforms {
		for _, key := range append([]string{t.Name()}, t.Aliases()...) {
			if _, dup := r.byName[key]; dup {
				panic("codec: duplicate transform name " + key)
			}
			r.byName[key] = t
		}
		r.sorted = append(r.sorted, t)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Name() < r.sorted[j].Name() })
	return r
}

var transforms = newRegistry(
	caesarTransform{base{
		name:        NameCaesar,
		aliases:     []string{"shift", "caesar-cipher"},
		description: "Caesar shift over Latin and Cyrillic letters",
		needs:       NeedsShift | NeedsLayout,
	}},
	rotTransform{base{
		name:        NameRot,
		aliases:     []string{"rot-n", "rotn", "printable"},
		description: "ROT-n rotation over the 95 printable ASCII characters",
		needs:       NeedsShift,
	}},
	morseTransform{base{
		name:        NameMorse,
		aliases:     []string{"morse-code"},
		description: "International Morse code, words separated by /",
		needs:       NeedsLayout,
	}},
	binaryTransform{base{
		name:        NameBinary,
		aliases:     []string{"bin"},
		description: "8-digit binary for every UTF-8 byte",
	}},
	asciiTransform{base{
		name:        NameASCII,
		aliases:     []string{"ascii-codes", "codes"},
		description: "Decimal character codes in a single-byte code page",
		needs:       NeedsCodePage,
	}},
	a1z26Transform{base{
		name:        NameA1Z26,
		aliases:     []string{"a1-z26", "letters"},
		description: "Letter positions 1-26 joined by hyphens",
		needs:       NeedsLayout,
	}},
	base32Transform{base{
		name:        NameBase32,
		aliases:     []string{"b32"},
		description: "RFC 4648 Base32 of the UTF-8 bytes",
	}},
	base64Transform{base{
		name:        NameBase64,
		aliases:     []string{"b64"},
		description: "RFC 4648 Base64 of the UTF-8 bytes",
	}},
)

// Lookup finds a transform by canonical name or alias, case-insensitively.
func Lookup(name string) (Transform, bool) {
	t, ok := transforms.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns every transform sorted by name.
func List() []Transform {
	return append([]Transform(nil), transforms.sorted...)
}

// Names returns the canonical names sorted alphabetically.
func Names() []string {
	names := make([]string, len(transforms.sorted))
	for i, t := range transforms.sorted {
		names[i] = t.Name()
	}
	return names
}
