package codec

import (
	"strings"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

const binaryWidth = 8

// EncodeBinary writes every UTF-8 byte of text as 8 binary digits, most
// significant bit first, separated by spaces.
func EncodeBinary(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text) * (binaryWidth + 1))
	for i := 0; i < len(text); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		c := text[i]
		for bit := binaryWidth - 1; bit >= 0; bit-- {
			b.WriteByte('0' + (c>>bit)&1)
		}
	}
	return b.String()
}

// DecodeBinary reverses EncodeBinary. Every whitespace separated token must
// be exactly 8 binary digits. Byte sequences that are not valid UTF-8 decode
// with U+FFFD in place of the bad bytes.
func DecodeBinary(text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", errors.Empty(NameBinary)
	}

	out := make([]byte, len(tokens))
	for i, tok := range tokens {
		if len(tok) != binaryWidth {
			return "", errors.Format(NameBinary, "token %d (%q) has %d digits, want %d", i+1, tok, len(tok), binaryWidth)
		}
		var v byte
		for j := 0; j < binaryWidth; j++ {
			switch tok[j] {
			case '0':
				v <<= 1
			case '1':
				v = v<<1 | 1
			default:
				return "", errors.Format(NameBinary, "token %d (%q) contains a non-binary digit", i+1, tok)
			}
		}
		out[i] = v
	}
	return bytesToText(out), nil
}

// bytesToText turns decoded bytes into a valid UTF-8 string.
func bytesToText(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

type binaryTransform struct{ base }

func (binaryTransform) Encode(text string, _ Params) (string, error) {
	return EncodeBinary(text), nil
}

func (binaryTransform) Decode(text string, _ Params) (string, error) {
	return DecodeBinary(text)
}
