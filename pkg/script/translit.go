package script

import (
	"strings"
	"unicode"
)

// cyrToLat holds the upper case Cyrillic to Latin pairs. Lower case entries
// are derived from it.
var cyrToLat = map[rune]rune{
	'А': 'A', 'Б': 'B', 'В': 'V', 'Г': 'G', 'Д': 'D',
	'Е': 'E', 'Ё': 'E', 'Ж': 'Z', 'З': 'Z', 'И': 'I',
	'Й': 'I', 'К': 'K', 'Л': 'L', 'М': 'M', 'Н': 'N',
	'О': 'O', 'П': 'P', 'Р': 'R', 'С': 'S', 'Т': 'T',
	'У': 'U', 'Ф': 'F', 'Х': 'H', 'Ц': 'C', 'Ч': 'C',
	'Ш': 'S', 'Щ': 'S', 'Ъ': '\'', 'Ы': 'Y', 'Ь': '\'',
	'Э': 'E', 'Ю': 'U', 'Я': 'Y',
}

// latToCyr picks one Cyrillic letter per Latin letter. Q, W and X have no
// single-letter Russian counterpart and use the closest sound.
var latToCyr = map[rune]rune{
	'A': 'А', 'B': 'Б', 'C': 'Ц', 'D': 'Д', 'E': 'Е',
	'F': 'Ф', 'G': 'Г', 'H': 'Х', 'I': 'И', 'J': 'Й',
	'K': 'К', 'L': 'Л', 'M': 'М', 'N': 'Н', 'O': 'О',
	'P': 'П', 'Q': 'К', 'R': 'Р', 'S': 'С', 'T': 'Т',
	'U': 'У', 'V': 'В', 'W': 'В', 'X': 'Х', 'Y': 'Ы',
	'Z': 'З',
}

var (
	toLatin    = withLowerCase(cyrToLat)
	toCyrillic = withLowerCase(latToCyr)
)

func withLowerCase(upper map[rune]rune) map[rune]rune {
	m := make(map[rune]rune, 2*len(upper))
	for k, v := range upper {
		m[k] = v
		m[unicode.ToLower(k)] = unicode.ToLower(v)
	}
	return m
}

// ToLatin returns the Latin counterpart of a Cyrillic letter.
func ToLatin(r rune) (rune, bool) {
	v, ok := toLatin[r]
	return v, ok
}

// ToCyrillic returns the Cyrillic counterpart of a Latin letter.
func ToCyrillic(r rune) (rune, bool) {
	v, ok := toCyrillic[r]
	return v, ok
}

// TransliterateToLatin rewrites every Cyrillic letter of s in Latin.
// Other characters are copied as they are.
func TransliterateToLatin(s string) string {
	return mapRunes(s, toLatin)
}

// TransliterateToCyrillic rewrites every Latin letter of s in Cyrillic.
func TransliterateToCyrillic(s string) string {
	return mapRunes(s, toCyrillic)
}

func mapRunes(s string, table map[rune]rune) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if v, ok := table[r]; ok {
			r = v
		}
		b.WriteRune(r)
	}
	return b.String()
}
