package script

import "unicode"

// Alphabet is an ordered sequence of letters with upper and lower case forms.
// Shifting works on positions in the sequence, so the code points do not
// need to be contiguous.
type Alphabet struct {
	name  string
	upper []rune
	lower []rune
	index map[rune]int
}

var (
	// LatinAlphabet is the 26-letter English alphabet.
	LatinAlphabet = newAlphabet("latin", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	// CyrillicAlphabet is the 32-letter Russian alphabet without Ё.
	CyrillicAlphabet = newAlphabet("cyrillic", "АБВГДЕЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ")
)

func newAlphabet(name, letters string) *Alphabet {
	upper := []rune(letters)
	a := &Alphabet{
		name:  name,
		upper: upper,
		lower: make([]rune, len(upper)),
		index: make(map[rune]int, 2*len(upper)),
	}
	for i, r := range upper {
		lr := unicode.ToLower(r)
		a.lower[i] = lr
		a.index[r] = i
		a.index[lr] = i
	}
	return a
}

// Name returns the alphabet name.
func (a *Alphabet) Name() string { return a.name }

// Size returns the number of letters.
func (a *Alphabet) Size() int { return len(a.upper) }

// Index returns the 0-based position of r and whether r is a letter of a.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Letter returns the letter at position i, upper or lower case.
// i is reduced modulo Size.
func (a *Alphabet) Letter(i int, upper bool) rune {
	i = Mod(i, len(a.upper))
	if upper {
		return a.upper[i]
	}
	return a.lower[i]
}

// Contains reports whether r is a letter of a in either case.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Shift moves r by k positions within the alphabet, wrapping around and
// keeping the case of r. Runes outside the alphabet are returned unchanged
// with ok set to false.
func (a *Alphabet) Shift(r rune, k int) (rune, bool) {
	i, ok := a.index[r]
	if !ok {
		return r, false
	}
	return a.Letter(i+k, a.upper[i] == r), true
}

// For returns the alphabet used for letters of script s, or nil for Other.
func For(s Script) *Alphabet {
	switch s {
	case Latin:
		return LatinAlphabet
	case Cyrillic:
		return CyrillicAlphabet
	}
	return nil
}

// Mod returns x modulo n re-based to [0, n).
func Mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
