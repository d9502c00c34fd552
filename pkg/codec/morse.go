package codec

import (
	"sort"
	"strings"
	"unicode"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/script"
)

// Morse symbols.
const (
	MorseDot           = '.'
	MorseDash          = '-'
	MorseWordSeparator = "/"
	MorseUnknown       = "?"
)

var morseCodes = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '!': "-.-.--", '@': ".--.-.",

	' ': MorseWordSeparator,
}

var morseLetters = func() map[string]rune {
	m := make(map[string]rune, len(morseCodes))
	for r, code := range morseCodes {
		if prev, dup := m[code]; dup {
			panic("codec: morse code " + code + " assigned to both " + string(prev) + " and " + string(r))
		}
		m[code] = r
	}
	return m
}()

// MorseCode returns the Morse code for r, which must be upper case.
func MorseCode(r rune) (string, bool) {
	code, ok := morseCodes[r]
	return code, ok
}

// MorseAlphabet returns the characters that have a Morse code, letters
// first, then digits and punctuation. The word separator is not included.
func MorseAlphabet() []rune {
	out := make([]rune, 0, len(morseCodes))
	for r := range morseCodes {
		if r != ' ' {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := unicode.IsLetter(out[i]), unicode.IsLetter(out[j])
		if li != lj {
			return li
		}
		return out[i] < out[j]
	})
	return out
}

// EncodeMorse converts text to Morse code. Codes are separated by single
// spaces and a space in the text becomes "/". Characters without a code,
// after layout resolution and Latin fallback, become "?".
func EncodeMorse(text string, layout script.Layout) string {
	codes := make([]string, 0, len(text))
	for _, r := range text {
		code, ok := morseCodes[unicode.ToUpper(latinOf(r, layout))]
		if !ok {
			code = MorseUnknown
		}
		codes = append(codes, code)
	}
	return strings.TrimSpace(strings.Join(codes, " "))
}

// DecodeMorse converts Morse code back to text. Words are split on "/",
// letters on whitespace, and words are joined with one space. Empty words,
// as in "... / / ---", are dropped. Codes missing from the table decode to
// "?".
//
// Any Unicode whitespace separates letters, so tabs, line breaks and
// no-break spaces from pasted text are accepted like plain spaces.
//
// Blank input fails with EMPTY_INPUT. Anything other than dots, dashes,
// slashes and whitespace fails with INVALID_FORMAT before decoding starts.
func DecodeMorse(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.Empty(NameMorse)
	}
	for _, r := range text {
		if r == MorseDot || r == MorseDash || r == '/' || unicode.IsSpace(r) {
			continue
		}
		return "", errors.Format(NameMorse, "unexpected character %q, only '.', '-', '/' and spaces are allowed", r)
	}

	words := strings.Split(text, MorseWordSeparator)
	decoded := make([]string, 0, len(words))
	for _, word := range words {
		codes := strings.Fields(word)
		if len(codes) == 0 {
			continue
		}
		var b strings.Builder
		for _, code := range codes {
			if r, ok := morseLetters[code]; ok {
				b.WriteRune(r)
			} else {
				b.WriteString(MorseUnknown)
			}
		}
		decoded = append(decoded, b.String())
	}
	return strings.Join(decoded, " "), nil
}

// latinOf resolves r under layout and falls back to the Latin transliteration
// for Cyrillic letters, since the Morse and A1Z26 tables only know Latin.
func latinOf(r rune, layout script.Layout) rune {
	c, s := script.Resolve(r, layout)
	if s == script.Cyrillic {
		if t, ok := script.ToLatin(c); ok {
			return t
		}
	}
	return c
}

type morseTransform struct{ base }

func (morseTransform) Encode(text string, p Params) (string, error) {
	return EncodeMorse(text, p.Layout), nil
}

func (morseTransform) Decode(text string, _ Params) (string, error) {
	return DecodeMorse(text)
}
