package activity

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/journal"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()
	j, err := journal.New(filepath.Join(t.TempDir(), "journal.log"))
	require.NoError(t, err)
	return &Recorder{History: history.NewMemoryStore(), Journal: j}
}

func TestRecorderTransform(t *testing.T) {
	ctx := context.Background()
	r := newRecorder(t)

	require.NoError(t, r.Transform(ctx, codec.NameCaesar, codec.Encode, "attack at dawn"))
	require.NoError(t, r.Transform(ctx, codec.NameMorse, codec.Decode, "... --- ..."))

	entries, err := r.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	ops := []history.Operation{entries[0].Operation, entries[1].Operation}
	assert.ElementsMatch(t, []history.Operation{history.OpEncrypt, history.OpDecrypt}, ops)

	lines, err := r.Journal.RecentLines(0)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "ENCRYPT: caesar: attack at dawn"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "DECRYPT: morse: ... --- ..."), lines[1])
}

func TestRecorderSignVerify(t *testing.T) {
	ctx := context.Background()
	r := newRecorder(t)

	require.NoError(t, r.Sign(ctx, strings.Repeat("x", 40)))
	require.NoError(t, r.Verify("hello", false))

	entries, err := r.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "verify is journaled only")
	assert.Equal(t, history.OpSign, entries[0].Operation)
	assert.Equal(t, strings.Repeat("x", 30)+"...", entries[0].Preview)

	lines, err := r.Journal.RecentLines(0)
	require.NoError(t, err)
	assert.Contains(t, lines[1], "VERIFY: hello (invalid)")
}

func TestRecorderHistoryActions(t *testing.T) {
	r := newRecorder(t)
	e := history.Entry{Operation: history.OpEncrypt, Transform: "rot", Preview: "abc"}

	require.NoError(t, r.HistoryRemoved(e))
	require.NoError(t, r.HistoryCleared(3))
	require.NoError(t, r.HistoryExported("/tmp/h.json", 2))
	require.NoError(t, r.QuickEncrypt())

	st, err := r.Journal.Stats()
	require.NoError(t, err)
	for _, action := range []string{journal.ActionHistoryRemove, journal.ActionHistoryClear, journal.ActionHistoryExport, journal.ActionQuickEncrypt} {
		assert.Equal(t, 1, st.Actions[action], action)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NoError(t, r.Transform(context.Background(), "rot", codec.Encode, "x"))
	assert.NoError(t, r.Close())

	partial := &Recorder{}
	assert.NoError(t, partial.Sign(context.Background(), "x"))
}
