package codec

import (
	"encoding/base32"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/snakecodec/pkg/script"
)

func FuzzShiftRoundTrip(f *testing.F) {
	f.Add("Hello, World", 3)
	f.Add("Съешь ещё", 25)
	f.Add("Ёж 123", 1)
	f.Add("e\u0301 \u0435\u0308 \u212B", 7)
	f.Fuzz(func(t *testing.T, s string, k int) {
		if !utf8.ValidString(s) {
			return
		}
		k = script.Mod(k, 25) + 1
		enc := Shift(s, k, true, script.LayoutAuto)
		if got := Shift(enc, k, false, script.LayoutAuto); got != s {
			t.Errorf("Shift round trip of %q with k=%d gave %q", s, k, got)
		}
	})
}

func FuzzRotateRoundTrip(f *testing.F) {
	f.Add("~ tilde and space", 13)
	f.Add("Привет", 5)
	f.Fuzz(func(t *testing.T, s string, k int) {
		if !utf8.ValidString(s) {
			return
		}
		k = script.Mod(k, 25) + 1
		if got := Rotate(Rotate(s, k, true), k, false); got != s {
			t.Errorf("Rotate round trip of %q with k=%d gave %q", s, k, got)
		}
	})
}

func FuzzBase32MatchesStdlib(f *testing.F) {
	f.Add([]byte("foobar"))
	f.Add([]byte{0, 0xff, 0x10})
	f.Fuzz(func(t *testing.T, b []byte) {
		got := EncodeBase32(b)
		if want := base32.StdEncoding.EncodeToString(b); got != want {
			t.Fatalf("EncodeBase32(%x) = %q, stdlib %q", b, got, want)
		}
		if len(b) == 0 {
			return
		}
		back, err := DecodeBase32(got)
		if err != nil {
			t.Fatalf("DecodeBase32(%q): %v", got, err)
		}
		if string(back) != string(b) {
			t.Errorf("round trip of %x gave %x", b, back)
		}
	})
}

func FuzzBinaryRoundTrip(f *testing.F) {
	f.Add("AB")
	f.Add("Я ё")
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) || s == "" {
			return
		}
		got, err := DecodeBinary(EncodeBinary(s))
		if err != nil {
			t.Fatalf("DecodeBinary: %v", err)
		}
		if got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	})
}

func FuzzDecodersNeverPanic(f *testing.F) {
	f.Add("... --- ...")
	f.Add("1-99-2")
	f.Add("MZXW6===")
	f.Add("65 300")
	f.Fuzz(func(t *testing.T, s string) {
		_, _ = DecodeMorse(s)
		_, _ = DecodeA1Z26(s)
		_, _ = DecodeBase32(s)
		_, _ = DecodeASCII(s, "")
		_, _ = DecodeBinary(s)
		_, _ = Detect(s)
	})
}
