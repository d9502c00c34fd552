package script

import (
	"encoding/json"
	"fmt"
)

// Script identifies the writing system of a single character.
type Script int

const (
	Other Script = iota
	Latin
	Cyrillic
)

var scriptNames = [...]string{"other", "latin", "cyrillic"}

// String returns the lowercase script name.
func (s Script) String() string {
	if s < 0 || int(s) >= len(scriptNames) {
		return fmt.Sprintf("Script(%d)", int(s))
	}
	return scriptNames[s]
}

// MarshalJSON encodes the script as its name.
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Letters outside the contiguous А..я block.
const (
	capitalIo = 'Ё'
	smallIo   = 'ё'
)

// Classify reports which alphabet r belongs to.
//
// Latin covers A-Z and a-z. Cyrillic covers А..я (U+0410..U+044F) plus Ё and
// ё, which sit outside that block and are matched explicitly.
func Classify(r rune) Script {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return Latin
	case r >= 'А' && r <= 'я':
		return Cyrillic
	case r == capitalIo, r == smallIo:
		return Cyrillic
	}
	return Other
}

// Dominant returns the script with the most letters in s, or Other when s has
// no letters. Ties resolve to Latin.
func Dominant(s string) Script {
	var latin, cyrillic int
	for _, r := range s {
		switch Classify(r) {
		case Latin:
			latin++
		case Cyrillic:
			cyrillic++
		}
	}
	switch {
	case latin == 0 && cyrillic == 0:
		return Other
	case cyrillic > latin:
		return Cyrillic
	}
	return Latin
}
