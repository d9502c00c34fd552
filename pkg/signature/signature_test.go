package signature

import (
	"strings"
	"testing"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

func TestSignVerify(t *testing.T) {
	for _, text := range []string{"hello", "Привет, мир", "  padded  "} {
		sig, err := Sign(text)
		if err != nil {
			t.Fatalf("Sign(%q): %v", text, err)
		}
		if _, _, err := Parse(sig); err != nil {
			t.Fatalf("Sign(%q) = %q has the wrong shape: %v", text, sig, err)
		}
		if !Verify(text, sig) {
			t.Errorf("Verify(%q, %q) = false", text, sig)
		}
		if Verify(text+"!", sig) {
			t.Errorf("tampered text verified")
		}
	}
}

func TestSignUsesFreshSalt(t *testing.T) {
	a, _ := Sign("same")
	b, _ := Sign("same")
	if a == b {
		t.Error("two signatures of the same text should differ")
	}
}

func TestSignWithSalt(t *testing.T) {
	sig := SignWithSalt("abc", "0011223344556677")
	if !strings.HasPrefix(sig, "0011223344556677:") || len(sig) != 16+1+64 {
		t.Fatalf("SignWithSalt = %q", sig)
	}
	if !Verify("abc", sig) {
		t.Error("signature with fixed salt should verify")
	}
}

func TestSignEmpty(t *testing.T) {
	if _, err := Sign("   "); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	good := SignWithSalt("text", "aabbccddeeff0011")
	tests := []struct {
		name string
		text string
		sig  string
	}{
		{"empty text", "", good},
		{"empty signature", "text", ""},
		{"no separator", "text", strings.ReplaceAll(good, ":", "")},
		{"extra separator", "text", good + ":x"},
		{"wrong digest", "text", "aabbccddeeff0011:" + strings.Repeat("0", 64)},
		{"upper case digest", "text", strings.ToUpper(good)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.text, tt.sig) {
				t.Errorf("Verify(%q, %q) = true", tt.text, tt.sig)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, _, err := Parse("xyz:abc"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("short salt error = %v", err)
	}
	if _, _, err := Parse("0011223344556677:" + strings.Repeat("g", 64)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("non hex digest error = %v", err)
	}
	desc, err := Describe(SignWithSalt("x", "0011223344556677"))
	if err != nil || !strings.HasPrefix(desc, "salt 0011223344556677, sha256 ") {
		t.Errorf("Describe = %q, %v", desc, err)
	}
}
