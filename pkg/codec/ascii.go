package codec

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// CodePage maps characters to single bytes and back.
type CodePage interface {
	EncodeRune(r rune) (byte, bool)
	DecodeByte(b byte) rune
}

// DefaultCodePage is the code page used when none is given.
const DefaultCodePage = "ascii"

// replacementByte stands in for characters the code page cannot represent.
const replacementByte = '?'

// asciiPage is 7-bit ASCII. Bytes above 127 decode to '?'.
type asciiPage struct{}

func (asciiPage) EncodeRune(r rune) (byte, bool) {
	if r >= 0 && r < 0x80 {
		return byte(r), true
	}
	return replacementByte, false
}

func (asciiPage) DecodeByte(b byte) rune {
	if b < 0x80 {
		return rune(b)
	}
	return replacementByte
}

var codePages = map[string]CodePage{
	"ascii":  asciiPage{},
	"latin1": charmap.ISO8859_1,
	"cp1251": charmap.Windows1251,
	"koi8r":  charmap.KOI8R,
	"cp866":  charmap.CodePage866,
}

// LookupCodePage returns the named code page; empty means DefaultCodePage.
func LookupCodePage(name string) (CodePage, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultCodePage
	}
	if cp, ok := codePages[key]; ok {
		return cp, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown code page %q (available: %s)", name, strings.Join(CodePageNames(), ", "))
}

// CodePageNames lists the supported code pages alphabetically.
func CodePageNames() []string {
	names := make([]string, 0, len(codePages))
	for name := range codePages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeASCII writes the byte code of every character of text in the given
// code page, separated by spaces. Characters the page cannot represent are
// written as 63, the code of '?'.
func EncodeASCII(text, codePage string) (string, error) {
	cp, err := LookupCodePage(codePage)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(text))
	for _, r := range text {
		b, ok := cp.EncodeRune(r)
		if !ok {
			b = replacementByte
		}
		codes = append(codes, strconv.Itoa(int(b)))
	}
	return strings.Join(codes, " "), nil
}

// DecodeASCII parses whitespace separated decimal codes in [0,255] and maps
// them through the given code page.
func DecodeASCII(text, codePage string) (string, error) {
	cp, err := LookupCodePage(codePage)
	if err != nil {
		return "", err
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", errors.Empty(NameASCII)
	}

	var b strings.Builder
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return "", errors.Format(NameASCII, "token %d (%q) is not a number", i+1, tok)
		}
		if v < 0 || v > 255 {
			return "", errors.Wrap(errors.ErrCodeInvalidFormat,
				errors.New(errors.ErrCodeOutOfRange, "%d is outside 0..255", v),
				"%s: token %d", NameASCII, i+1)
		}
		b.WriteRune(cp.DecodeByte(byte(v)))
	}
	return b.String(), nil
}

type asciiTransform struct{ base }

func (asciiTransform) Encode(text string, p Params) (string, error) {
	return EncodeASCII(text, p.CodePage)
}

func (asciiTransform) Decode(text string, p Params) (string, error) {
	return DecodeASCII(text, p.CodePage)
}
