package codec

import (
	"strings"

	"github.com/matzehuels/snakecodec/pkg/script"
)

// Shift applies the Caesar cipher to text.
//
// Each letter is first passed through the layout resolver, then moved by
// amount positions within its own alphabet: modulo 26 for Latin and modulo 32
// for Cyrillic. Decryption moves the other way. Case is kept per letter. Ё
// and ё are not part of the 32-letter sequence and come out unchanged, as do
// digits, punctuation and anything else outside both alphabets. Text is not
// normalized, so a combining mark stays a separate character and only the
// letter before it is shifted.
//
// Under a forcing layout the substituted letter is what gets shifted and
// written, so decrypting does not bring back the original script.
func Shift(text string, amount int, encrypt bool, layout script.Layout) string {
	if text == "" {
		return text
	}
	if !encrypt {
		amount = -amount
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		c, s := script.Resolve(r, layout)
		if a := script.For(s); a != nil {
			c, _ = a.Shift(c, amount)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Printable range covered by Rotate.
const (
	printableFirst = ' '
	printableLast  = '~'
	printableSize  = printableLast - printableFirst + 1
)

// Rotate applies ROT-n over the 95 printable ASCII characters from space to
// tilde. Characters outside that range are copied unchanged, which makes
// the rotation independent of script.
func Rotate(text string, amount int, encrypt bool) string {
	if text == "" {
		return text
	}
	if !encrypt {
		amount = -amount
	}
	k := rune(script.Mod(amount, printableSize))

	return strings.Map(func(r rune) rune {
		if r < printableFirst || r > printableLast {
			return r
		}
		return printableFirst + (r-printableFirst+k)%printableSize
	}, text)
}

type caesarTransform struct{ base }

func (caesarTransform) Encode(text string, p Params) (string, error) {
	return Shift(text, p.Shift, true, p.Layout), nil
}

func (caesarTransform) Decode(text string, p Params) (string, error) {
	return Shift(text, p.Shift, false, p.Layout), nil
}

type rotTransform struct{ base }

func (rotTransform) Encode(text string, p Params) (string, error) {
	return Rotate(text, p.Shift, true), nil
}

func (rotTransform) Decode(text string, p Params) (string, error) {
	return Rotate(text, p.Shift, false), nil
}
