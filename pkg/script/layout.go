package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Layout selects which alphabet script-aware transforms operate in.
type Layout int

const (
	// LayoutAuto processes each letter in the script it already belongs to.
	LayoutAuto Layout = iota
	// LayoutCyrillic transliterates Latin letters to Cyrillic first.
	LayoutCyrillic
	// LayoutLatin transliterates Cyrillic letters to Latin first.
	LayoutLatin
)

var layoutNames = [...]string{"auto", "cyrillic", "latin"}

// Layouts lists every layout mode in declaration order.
var Layouts = []Layout{LayoutAuto, LayoutCyrillic, LayoutLatin}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout parses a layout name case-insensitively. The short forms
// "ru", "cyr", "en" and "lat" are accepted too; empty means auto.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LayoutAuto, nil
	case "cyrillic", "cyr", "ru":
		return LayoutCyrillic, nil
	case "latin", "lat", "en":
		return LayoutLatin, nil
	}
	return LayoutAuto, fmt.Errorf("unknown layout %q (want auto, cyrillic or latin)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(b []byte) error {
	v, err := ParseLayout(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// MarshalJSON encodes the layout as its name.
func (l Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts a layout name.
func (l *Layout) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("layout must be a string: %w", err)
	}
	return l.UnmarshalText([]byte(s))
}

// Resolve applies layout l to r. It returns the rune a transform should work
// on and that rune's script.
//
// When l forces the other script and r has a transliteration, the
// transliterated rune is returned. Otherwise r comes back unchanged with its
// own classification. The result of a forced transliteration may be Other,
// as with Ъ becoming an apostrophe under LayoutLatin.
func Resolve(r rune, l Layout) (rune, Script) {
	s := Classify(r)
	switch {
	case l == LayoutLatin && s == Cyrillic:
		if t, ok := toLatin[r]; ok {
			return t, Classify(t)
		}
	case l == LayoutCyrillic && s == Latin:
		if t, ok := toCyrillic[r]; ok {
			return t, Classify(t)
		}
	}
	return r, s
}
