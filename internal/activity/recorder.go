// Package activity records completed operations to the history store and
// the journal. The CLI and the HTTP API share it so both surfaces leave the
// same trail.
package activity

import (
	"context"
	"fmt"

	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/journal"
)

// Recorder writes history entries and journal lines. A nil Recorder, or one
// with nil members, silently skips the missing half.
type Recorder struct {
	History history.Store
	Journal *journal.Journal
}

// Transform records a successful encode or decode of input.
func (r *Recorder) Transform(ctx context.Context, transform string, dir codec.Direction, input string) error {
	op, action := history.OpEncrypt, journal.ActionEncrypt
	if dir == codec.Decode {
		op, action = history.OpDecrypt, journal.ActionDecrypt
	}
	return r.both(ctx, op, transform, action, fmt.Sprintf("%s: %s", transform, history.Preview(input)), input)
}

// QuickEncrypt records the ROT13 quick action. It only writes the journal,
// the text itself is not kept.
func (r *Recorder) QuickEncrypt() error {
	return r.journal(journal.ActionQuickEncrypt, "ROT13")
}

// Sign records a signature of text.
func (r *Recorder) Sign(ctx context.Context, text string) error {
	return r.both(ctx, history.OpSign, "signature", journal.ActionSign, history.Preview(text), text)
}

// Verify records a verification and its outcome.
func (r *Recorder) Verify(text string, valid bool) error {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	return r.journal(journal.ActionVerify, fmt.Sprintf("%s (%s)", history.Preview(text), outcome))
}

// HistoryRemoved journals the removal of e.
func (r *Recorder) HistoryRemoved(e history.Entry) error {
	return r.journal(journal.ActionHistoryRemove, fmt.Sprintf("%s | %s | %s", e.Operation, e.Transform, e.Preview))
}

// HistoryCleared journals that n entries were cleared.
func (r *Recorder) HistoryCleared(n int) error {
	return r.journal(journal.ActionHistoryClear, fmt.Sprintf("%d entries cleared", n))
}

// HistoryExported journals an export to path.
func (r *Recorder) HistoryExported(path string, n int) error {
	return r.journal(journal.ActionHistoryExport, fmt.Sprintf("%d entries exported to %s", n, path))
}

// HistoryImported journals an import from path.
func (r *Recorder) HistoryImported(path string, n int) error {
	return r.journal(journal.ActionHistoryImport, fmt.Sprintf("%d entries imported from %s", n, path))
}

func (r *Recorder) both(ctx context.Context, op history.Operation, transform, action, details, text string) error {
	if r == nil {
		return nil
	}
	if r.History != nil {
		if err := r.History.Add(ctx, history.NewEntry(op, transform, text)); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}
	return r.journal(action, details)
}

func (r *Recorder) journal(action, details string) error {
	if r == nil || r.Journal == nil {
		return nil
	}
	if err := r.Journal.Record(action, details); err != nil {
		return fmt.Errorf("record journal: %w", err)
	}
	return nil
}

// Close closes the history store.
func (r *Recorder) Close() error {
	if r == nil || r.History == nil {
		return nil
	}
	return r.History.Close()
}
