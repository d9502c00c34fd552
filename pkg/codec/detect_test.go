package codec

import (
	"context"
	"testing"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

func TestDetectTopGuess(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      string
		wantLabel string
	}{
		{"binary", "01000001 01000010", NameBinary, ConfidenceHigh},
		{"morse", "... --- ...", NameMorse, ConfidenceHigh},
		{"a1z26", "8-5-12-12-15", NameA1Z26, ConfidenceHigh},
		{"base32", "MZXW6YTBOI======", NameBase32, ConfidenceHigh},
		{"base64", "SGVsbG8gV29ybGQ=", NameBase64, ConfidenceHigh},
		{"ascii", "72 101 108", NameASCII, ConfidenceHigh},
		{"shifted letters", "Khoor", NameCaesar, ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.text)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if len(got) == 0 {
				t.Fatal("no detections")
			}
			if got[0].Transform != tt.want || got[0].Label != tt.wantLabel {
				t.Errorf("top guess = %s (%s), want %s (%s)", got[0].Transform, got[0].Label, tt.want, tt.wantLabel)
			}
		})
	}
}

func TestDetectRanking(t *testing.T) {
	got, err := Detect("SGVsbG8gV29ybGQ=")
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range got {
		if d.Confidence < minConfidence {
			t.Errorf("%s kept with confidence %.2f", d.Transform, d.Confidence)
		}
		if i > 0 && got[i-1].Confidence < d.Confidence {
			t.Errorf("results not sorted at %d: %.2f < %.2f", i, got[i-1].Confidence, d.Confidence)
		}
	}
}

func TestDetectBlank(t *testing.T) {
	if _, err := Detect("  "); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}

func TestDetectNothingRecognised(t *testing.T) {
	got, err := Detect("#$%^")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no detections, got %+v", got)
	}
}

func TestDecodeCandidates(t *testing.T) {
	got, err := DecodeCandidates(context.Background(), "SGVsbG8gV29ybGQ=", Params{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1 (shift ciphers are skipped): %+v", len(got), got)
	}
	if got[0].Transform != NameBase64 || got[0].Output != "Hello World" {
		t.Errorf("candidate = %+v", got[0])
	}
}
