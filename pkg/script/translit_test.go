package script

import (
	"testing"
	"unicode"
)

func TestToLatinCoversAllCyrillicLetters(t *testing.T) {
	letters := []rune("АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ")
	if len(letters) != 33 {
		t.Fatalf("test alphabet has %d letters", len(letters))
	}
	for _, r := range letters {
		if _, ok := ToLatin(r); !ok {
			t.Errorf("ToLatin(%q) missing", r)
		}
		if _, ok := ToLatin(unicode.ToLower(r)); !ok {
			t.Errorf("ToLatin(%q) missing", unicode.ToLower(r))
		}
	}
}

func TestToCyrillicCoversAllLatinLetters(t *testing.T) {
	for r := 'A'; r <= 'Z'; r++ {
		if _, ok := ToCyrillic(r); !ok {
			t.Errorf("ToCyrillic(%q) missing", r)
		}
		if _, ok := ToCyrillic(unicode.ToLower(r)); !ok {
			t.Errorf("ToCyrillic(%q) missing", unicode.ToLower(r))
		}
	}
}

func TestToLatinCaseFollowsInput(t *testing.T) {
	if got, _ := ToLatin('ж'); got != 'z' {
		t.Errorf("ToLatin('ж') = %q, want 'z'", got)
	}
	if got, _ := ToLatin('Ж'); got != 'Z' {
		t.Errorf("ToLatin('Ж') = %q, want 'Z'", got)
	}
}

// The Cyrillic to Latin table collapses several letters onto one. These
// groups must keep colliding.
func TestToLatinIsLossy(t *testing.T) {
	groups := []struct {
		latin   rune
		letters []rune
	}{
		{'E', []rune{'Е', 'Ё', 'Э'}},
		{'Z', []rune{'Ж', 'З'}},
		{'C', []rune{'Ц', 'Ч'}},
		{'S', []rune{'С', 'Ш', 'Щ'}},
		{'I', []rune{'И', 'Й'}},
		{'U', []rune{'У', 'Ю'}},
		{'Y', []rune{'Ы', 'Я'}},
		{'\'', []rune{'Ъ', 'Ь'}},
	}

	for _, g := range groups {
		for _, r := range g.letters {
			if got, _ := ToLatin(r); got != g.latin {
				t.Errorf("ToLatin(%q) = %q, want %q", r, got, g.latin)
			}
		}
	}
}

func TestRoundTripThroughTables(t *testing.T) {
	// Letters whose Latin form maps straight back.
	for _, r := range []rune("АБВГДЗИКЛМНОПРСТУФХЦЫ") {
		lat, _ := ToLatin(r)
		back, ok := ToCyrillic(lat)
		if !ok || back != r {
			t.Errorf("%q -> %q -> %q, want round trip", r, lat, back)
		}
	}

	// Collision letters come back as the chosen representative.
	lossy := map[rune]rune{'Ё': 'Е', 'Ж': 'З', 'Ч': 'Ц', 'Щ': 'С', 'Я': 'Ы', 'Ю': 'У'}
	for r, want := range lossy {
		lat, _ := ToLatin(r)
		back, _ := ToCyrillic(lat)
		if back != want {
			t.Errorf("%q -> %q -> %q, want %q", r, lat, back, want)
		}
	}
}

func TestTransliterateStrings(t *testing.T) {
	if got := TransliterateToLatin("Привет, мир!"); got != "Privet, mir!" {
		t.Errorf("TransliterateToLatin = %q", got)
	}
	if got := TransliterateToCyrillic("Privet"); got != "Привет" {
		t.Errorf("TransliterateToCyrillic = %q", got)
	}
	if got := TransliterateToLatin("чай"); got != "cai" {
		t.Errorf("TransliterateToLatin(чай) = %q, want %q", got, "cai")
	}
}
