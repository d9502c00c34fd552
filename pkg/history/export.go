package history

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatTOML}

type document struct {
	Entries []Entry `json:"entries" toml:"entries"`
}

// FormatFromPath picks the export format from the file extension, falling
// back to JSON.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

func parseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (available: %s)", format, strings.Join(Formats, ", "))
}

// Export writes entries to w in the given format. The output can be read
// back with Import.
func Export(w io.Writer, entries []Entry, format string) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	doc := document{Entries: entries}
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}

	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

// Import reads entries written by Export. Entries without an ID are
// rejected.
func Import(r io.Reader, format string) ([]Entry, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	var doc document
	switch f {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml history")
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json history")
		}
	}

	for i, e := range doc.Entries {
		if e.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "history entry %d has no id", i+1)
		}
	}
	return doc.Entries, nil
}
