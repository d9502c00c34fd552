package script

import (
	"encoding/json"
	"testing"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"", LayoutAuto, false},
		{"auto", LayoutAuto, false},
		{"AUTO", LayoutAuto, false},
		{"cyrillic", LayoutCyrillic, false},
		{"ru", LayoutCyrillic, false},
		{" latin ", LayoutLatin, false},
		{"en", LayoutLatin, false},
		{"greek", LayoutAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseLayout(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLayout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayoutStringRoundTrip(t *testing.T) {
	for _, l := range Layouts {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v", l.String(), got, err)
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	type payload struct {
		Layout Layout `json:"layout"`
	}

	b, err := json.Marshal(payload{Layout: LayoutLatin})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"layout":"latin"}` {
		t.Errorf("Marshal = %s", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"layout":"cyrillic"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Layout != LayoutCyrillic {
		t.Errorf("Unmarshal layout = %v", p.Layout)
	}

	if err := json.Unmarshal([]byte(`{"layout":"klingon"}`), &p); err == nil {
		t.Error("Unmarshal of unknown layout should fail")
	}
	if err := json.Unmarshal([]byte(`{"layout":3}`), &p); err == nil {
		t.Error("Unmarshal of a number should fail")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		r          rune
		layout     Layout
		wantRune   rune
		wantScript Script
	}{
		{"auto keeps latin", 'a', LayoutAuto, 'a', Latin},
		{"auto keeps cyrillic", 'ж', LayoutAuto, 'ж', Cyrillic},
		{"auto keeps other", '!', LayoutAuto, '!', Other},
		{"latin forces cyrillic letter", 'П', LayoutLatin, 'P', Latin},
		{"latin keeps latin", 'q', LayoutLatin, 'q', Latin},
		{"latin hard sign becomes other", 'ъ', LayoutLatin, '\'', Other},
		{"latin io", 'Ё', LayoutLatin, 'E', Latin},
		{"cyrillic forces latin letter", 'b', LayoutCyrillic, 'б', Cyrillic},
		{"cyrillic keeps cyrillic", 'Я', LayoutCyrillic, 'Я', Cyrillic},
		{"cyrillic keeps digits", '7', LayoutCyrillic, '7', Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := Resolve(tt.r, tt.layout)
			if r != tt.wantRune || s != tt.wantScript {
				t.Errorf("Resolve(%q, %v) = %q, %v; want %q, %v", tt.r, tt.layout, r, s, tt.wantRune, tt.wantScript)
			}
		})
	}
}
