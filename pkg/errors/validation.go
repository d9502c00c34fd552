package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxTextLength is the input limit applied when callers configure none.
const DefaultMaxTextLength = 10000

// Shift bounds accepted by the shift-based transforms.
const (
	MinShift = 1
	MaxShift = 25
)

// ValidateText enforces the maximum input length, counted in characters
// rather than bytes so that Cyrillic text gets the same budget as Latin.
// A max of zero or less means DefaultMaxTextLength.
func ValidateText(text string, max int) error {
	if max <= 0 {
		max = DefaultMaxTextLength
	}
	if n := utf8.RuneCountInString(text); n > max {
		return New(ErrCodeTextTooLong, "text is %d characters long (max %d)", n, max)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}
	return nil
}

// ValidateShift checks that k lies within [MinShift, MaxShift].
func ValidateShift(k int) error {
	if k < MinShift || k > MaxShift {
		return New(ErrCodeOutOfRange, "shift %d is outside %d..%d", k, MinShift, MaxShift)
	}
	return nil
}

// ValidateExportPath validates a destination path for history and journal exports.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - No null bytes or control characters
//   - Must name a file, not a directory
func ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "export path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "export path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "export path must name a file: %q", path)
	}

	return nil
}
