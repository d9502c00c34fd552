package codec

import (
	"context"
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// Confidence labels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// minConfidence drops guesses below this score.
const minConfidence = 0.3

// Detection is one guess about how a text was encoded.
type Detection struct {
	Transform  string  `json:"transform"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
	Reasoning  string  `json:"reasoning"`
}

// Candidate is a detection together with the result of decoding with it.
type Candidate struct {
	Detection
	Output string `json:"output"`
}

type detector func(s string) (Detection, bool)

// detectors run in precedence order; at equal confidence an earlier
// detector ranks first.
var detectors = []detector{
	detectBinary,
	detectMorse,
	detectA1Z26,
	detectBase32,
	detectBase64,
	detectASCII,
	detectShifted,
}

// Detect guesses which transform produced text by looking at its character
// classes. It is a heuristic: results are ranked by confidence, highest
// first, and guesses below 0.3 are dropped. Blank input fails with
// EMPTY_INPUT.
func Detect(text string) ([]Detection, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.Empty("detect")
	}

	var results []Detection
	for _, d := range detectors {
		if r, ok := d(s); ok && r.Confidence >= minConfidence {
			r.Label = confidenceLabel(r.Confidence)
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results, nil
}

// DecodeCandidates decodes text with every detected transform that needs
// no key and returns the attempts that succeeded, best guess first.
func DecodeCandidates(ctx context.Context, text string, p Params) ([]Candidate, error) {
	detections, err := Detect(text)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for _, d := range detections {
		t, _ := Lookup(d.Transform)
		if t.Needs().Has(NeedsShift) {
			continue
		}
		decoded, err := Run(ctx, d.Transform, Decode, text, p)
		if err != nil {
			continue
		}
		out = append(out, Candidate{Detection: d, Output: decoded})
	}
	return out, nil
}

func confidenceLabel(c float64) string {
	switch {
	case c >= 0.8:
		return ConfidenceHigh
	case c >= 0.5:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// onlyRunes reports whether every rune of s is whitespace or satisfies ok.
func onlyRunes(s string, ok func(r rune) bool) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !ok(r) {
			return false
		}
	}
	return true
}

func detectBinary(s string) (Detection, bool) {
	if !onlyRunes(s, func(r rune) bool { return r == '0' || r == '1' }) ||
		!strings.ContainsRune(s, '0') || !strings.ContainsRune(s, '1') {
		return Detection{}, false
	}
	d := Detection{Transform: NameBinary, Confidence: 0.6, Reasoning: "only 0, 1 and spaces"}
	if _, err := DecodeBinary(s); err == nil {
		d.Confidence = 0.95
		d.Reasoning = "space separated groups of 8 binary digits"
	}
	return d, true
}

func detectMorse(s string) (Detection, bool) {
	if !onlyRunes(s, func(r rune) bool { return r == MorseDot || r == MorseDash || r == '/' }) ||
		!strings.ContainsRune(s, MorseDot) || !strings.ContainsRune(s, MorseDash) {
		return Detection{}, false
	}
	d := Detection{Transform: NameMorse, Confidence: 0.9, Reasoning: "only dots, dashes and word separators"}
	if out, err := DecodeMorse(s); err == nil && !strings.Contains(out, MorseUnknown) {
		d.Confidence = 0.95
		d.Reasoning = "every code is in the Morse table"
	}
	return d, true
}

func detectA1Z26(s string) (Detection, bool) {
	if !strings.Contains(s, a1z26Separator) {
		return Detection{}, false
	}
	tokens := 0
	for _, tok := range strings.Split(s, a1z26Separator) {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		n, numeric := parsePosition(tok)
		if !numeric || n < 1 || n > 26 {
			return Detection{}, false
		}
		tokens++
	}
	if tokens == 0 {
		return Detection{}, false
	}
	return Detection{Transform: NameA1Z26, Confidence: 0.85, Reasoning: "hyphen separated numbers between 1 and 26"}, true
}

func detectBase32(s string) (Detection, bool) {
	if len(s)%base32Block != 0 {
		return Detection{}, false
	}
	body := strings.TrimRight(s, string(base32Pad))
	hasDigit := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if base32Values[c] < 0 || (c >= 'a' && c <= 'z') {
			return Detection{}, false
		}
		if c >= '2' && c <= '7' {
			hasDigit = true
		}
	}
	if body == "" {
		return Detection{}, false
	}
	d := Detection{Transform: NameBase32, Confidence: 0.6, Reasoning: "upper case letters, length a multiple of 8"}
	if hasDigit || len(body) != len(s) {
		d.Confidence = 0.8
		d.Reasoning = "RFC 4648 base32 alphabet with block padding"
	}
	return d, true
}

func detectBase64(s string) (Detection, bool) {
	if len(s)%4 != 0 {
		return Detection{}, false
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Detection{}, false
	}
	d := Detection{Transform: NameBase64, Confidence: 0.7, Reasoning: "base64 alphabet, length a multiple of 4"}
	if utf8.Valid(decoded) && printable(string(decoded)) {
		d.Confidence = 0.85
		d.Reasoning = "decodes to readable text"
	}
	if looksLikeWord(s) {
		d.Confidence -= 0.35
	}
	return d, true
}

func detectASCII(s string) (Detection, bool) {
	fields := strings.Fields(s)
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 || strings.ContainsAny(f, "+-") {
			return Detection{}, false
		}
	}
	conf := 0.8
	if len(fields) == 1 {
		conf = 0.5
	}
	return Detection{Transform: NameASCII, Confidence: conf, Reasoning: "space separated byte values"}, true
}

func detectShifted(s string) (Detection, bool) {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return Detection{Transform: NameCaesar, Confidence: 0.35, Reasoning: "letters present, may be plain or shifted text"}, true
		}
	}
	return Detection{}, false
}

func printable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}

// looksLikeWord reports whether s is letters of a single case only, which is
// far more likely to be plain text than base64.
func looksLikeWord(s string) bool {
	lower, upper := false, false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		default:
			return false
		}
	}
	return lower != upper
}
