package codec

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/script"
)

const a1z26Separator = "-"

// EncodeA1Z26 replaces every letter with its position in the Latin
// alphabet (A=1 .. Z=26) and joins the tokens with hyphens. Cyrillic letters
// are counted by their Latin transliteration. Every other character becomes a
// token of its own, so "A B" encodes to "1- -2".
func EncodeA1Z26(text string, layout script.Layout) string {
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		c := latinOf(r, layout)
		if u := unicode.ToUpper(c); u >= 'A' && u <= 'Z' {
			tokens = append(tokens, strconv.Itoa(int(u-'A'+1)))
			continue
		}
		tokens = append(tokens, string(c))
	}
	return strings.Join(tokens, a1z26Separator)
}

// DecodeA1Z26 maps hyphen separated positions 1..26 back to upper case
// letters. Decoding never fails on content: tokens that are not numbers and
// numbers outside 1..26 are copied as they are. A hyphen is kept only next
// to an out-of-range number, on whichever side has a neighbor, so "1-99-2"
// decodes to "A-99-B", "1-99-x" to "A-99-x" and "x-1" to "xA".
//
// Blank input fails with EMPTY_INPUT.
func DecodeA1Z26(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.Empty(NameA1Z26)
	}

	var b strings.Builder
	prevKept := false
	first := true
	for _, tok := range strings.Split(text, a1z26Separator) {
		if tok == "" {
			continue
		}
		n, numeric := parsePosition(tok)
		letter := numeric && n >= 1 && n <= 26
		kept := numeric && !letter
		if !first && (kept || prevKept) {
			b.WriteString(a1z26Separator)
		}
		if letter {
			b.WriteRune(rune('A' + n - 1))
		} else {
			b.WriteString(tok)
		}
		prevKept = kept
		first = false
	}
	return b.String(), nil
}

// parsePosition parses a token of ASCII digits, ignoring surrounding space.
func parsePosition(tok string) (int, bool) {
	s := strings.TrimSpace(tok)
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Too many digits for an int is still a number, just not a letter.
		return -1, true
	}
	return n, true
}

type a1z26Transform struct{ base }

func (a1z26Transform) Encode(text string, p Params) (string, error) {
	return EncodeA1Z26(text, p.Layout), nil
}

func (a1z26Transform) Decode(text string, _ Params) (string, error) {
	return DecodeA1Z26(text)
}
