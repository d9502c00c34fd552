package journal

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// Stats summarises the journal.
type Stats struct {
	Lines     int            `json:"lines"`
	Malformed int            `json:"malformed"`
	Actions   map[string]int `json:"actions"`
	First     time.Time      `json:"first,omitempty"`
	Last      time.Time      `json:"last,omitempty"`
	SizeBytes int64          `json:"size_bytes"`
}

// ActionNames returns the recorded actions, most frequent first.
func (s Stats) ActionNames() []string {
	names := make([]string, 0, len(s.Actions))
	for a := range s.Actions {
		names = append(names, a)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Actions[names[i]] != s.Actions[names[j]] {
			return s.Actions[names[i]] > s.Actions[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Stats counts the records per action and reports the time span covered.
func (j *Journal) Stats() (Stats, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	st := Stats{Actions: map[string]int{}}
	info, err := os.Stat(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("stat journal: %w", err)
	}
	st.SizeBytes = info.Size()

	lines, err := j.readLines()
	if err != nil {
		return st, err
	}
	st.Lines = len(lines)
	for _, raw := range lines {
		l, ok := Parse(raw)
		if !ok {
			st.Malformed++
			continue
		}
		st.Actions[l.Action]++
		if st.First.IsZero() || l.Time.Before(st.First) {
			st.First = l.Time
		}
		if l.Time.After(st.Last) {
			st.Last = l.Time
		}
	}
	return st, nil
}
