package codec

import (
	"strings"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// Base32Alphabet is the RFC 4648 base32 alphabet.
const Base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

const (
	base32Pad   = '='
	base32Block = 8
)

// base32Values maps an input byte to its 5-bit value, or -1. Lower case
// letters map like their upper case forms.
var base32Values = func() [256]int8 {
	var tab [256]int8
	for i := range tab {
		tab[i] = -1
	}
	for i := 0; i < len(Base32Alphabet); i++ {
		c := Base32Alphabet[i]
		tab[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			tab[c+'a'-'A'] = int8(i)
		}
	}
	return tab
}()

// EncodeBase32 packs src into 5-bit groups, most significant bit first, and
// pads the output with '=' to a multiple of 8 characters.
func EncodeBase32(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	n := (len(src)*8 + 4) / 5
	var b strings.Builder
	b.Grow((n + base32Block - 1) / base32Block * base32Block)

	var acc uint32
	bits := 0
	for _, c := range src {
		acc = acc<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(Base32Alphabet[(acc>>bits)&0x1f])
		}
		acc &= 1<<bits - 1
	}
	if bits > 0 {
		b.WriteByte(Base32Alphabet[(acc<<(5-bits))&0x1f])
	}
	for b.Len()%base32Block != 0 {
		b.WriteByte(base32Pad)
	}
	return b.String()
}

// DecodeBase32 reverses EncodeBase32. Surrounding whitespace and trailing
// padding are dropped and letters are accepted in either case. Bits left
// over after the last whole byte are discarded.
func DecodeBase32(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Empty(NameBase32)
	}
	s = strings.TrimRight(s, string(base32Pad))

	out := make([]byte, 0, len(s)*5/8)
	var acc uint32
	bits := 0
	pos := 0
	for _, r := range s {
		pos++
		v := int8(-1)
		if r >= 0 && r < 256 {
			v = base32Values[r]
		}
		if v < 0 {
			return nil, errors.Format(NameBase32, "invalid character %q at position %d", r, pos)
		}
		acc = acc<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
			acc &= 1<<bits - 1
		}
	}
	return out, nil
}

type base32Transform struct{ base }

func (base32Transform) Encode(text string, _ Params) (string, error) {
	return EncodeBase32([]byte(text)), nil
}

func (base32Transform) Decode(text string, _ Params) (string, error) {
	b, err := DecodeBase32(text)
	if err != nil {
		return "", err
	}
	return bytesToText(b), nil
}
