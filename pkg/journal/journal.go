// Package journal keeps the append-only action log of snakecodec.
//
// Each record is one line of the form
//
//	[2006-01-02 15:04:05] ACTION: details
//
// in local time. Lines that do not parse are counted as malformed by Stats
// and otherwise shown as they are.
package journal

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Actions recorded by snakecodec.
const (
	ActionEncrypt       = "ENCRYPT"
	ActionDecrypt       = "DECRYPT"
	ActionSign          = "SIGN"
	ActionVerify        = "VERIFY"
	ActionQuickEncrypt  = "QUICK_ENCRYPT"
	ActionHistoryClear  = "HISTORY_CLEAR"
	ActionHistoryRemove = "HISTORY_REMOVE"
	ActionHistoryExport = "HISTORY_EXPORT"
	ActionHistoryImport = "HISTORY_IMPORT"
)

// TimeLayout is the timestamp layout of a journal line.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultRecent is the number of lines shown when none is requested.
const DefaultRecent = 50

// Journal appends records to a text file. It is safe for concurrent use
// within one process.
type Journal struct {
	mu     sync.Mutex
	path   string
	now    func() time.Time
	mirror io.Writer
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// WithMirror copies every written line to w as well.
func WithMirror(w io.Writer) Option {
	return func(j *Journal) {
		j.mirror = w
	}
}

// New returns a journal writing to path, creating its directory.
func New(path string, opts ...Option) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	j := &Journal{path: path, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Path returns the journal file.
func (j *Journal) Path() string { return j.path }

// Record appends one line. Line breaks in details are replaced by spaces so
// a record always occupies a single line.
func (j *Journal) Record(action, details string) error {
	line := Format(j.now(), action, details)

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := io.WriteString(f, line+"\n"); err != nil {
		f.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if j.mirror != nil {
		_, _ = io.WriteString(j.mirror, line+"\n")
	}
	return nil
}

// RecentLines returns the last n lines, oldest first. n <= 0 returns every
// line. A missing journal has no lines.
func (j *Journal) RecentLines(n int) ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	lines, err := j.readLines()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func (j *Journal) readLines() ([]string, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// Clear removes every record.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// Export copies the whole journal to w.
func (j *Journal) Export(w io.Writer) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("export journal: %w", err)
	}
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Format renders one journal line without the trailing newline.
func Format(t time.Time, action, details string) string {
	action = strings.ToUpper(strings.TrimSpace(action))
	details = lineBreaks.Replace(details)
	return fmt.Sprintf("[%s] %s: %s", t.Format(TimeLayout), action, details)
}

// Line is a parsed journal record.
type Line struct {
	Time    time.Time
	Action  string
	Details string
}

// Parse reads a line produced by Format. Times are interpreted in the local
// zone.
func Parse(s string) (Line, bool) {
	if len(s) < len(TimeLayout)+2 || s[0] != '[' || s[len(TimeLayout)+1] != ']' {
		return Line{}, false
	}
	t, err := time.ParseInLocation(TimeLayout, s[1:len(TimeLayout)+1], time.Local)
	if err != nil {
		return Line{}, false
	}
	rest := strings.TrimPrefix(s[len(TimeLayout)+2:], " ")
	action, details, ok := strings.Cut(rest, ":")
	if !ok || action == "" {
		return Line{}, false
	}
	return Line{Time: t, Action: action, Details: strings.TrimPrefix(details, " ")}, true
}
