package codec

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/observability"
)

// Run looks up the named transform and applies it in the given direction.
//
// Shift-based transforms require p.Shift within errors.MinShift..MaxShift.
// Decoding blank input fails with EMPTY_INPUT for every transform, including
// the ciphers whose pure functions would return it unchanged. Encoding empty
// input returns an empty string.
//
// ctx is only passed on to the observability hooks; transforms never block.
func Run(ctx context.Context, name string, dir Direction, text string, p Params) (string, error) {
	t, ok := Lookup(name)
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownTransform, "unknown transform %q (available: %s)", name, strings.Join(Names(), ", "))
	}

	start := time.Now()
	out, err := apply(t, dir, text, p)
	observability.Transforms().OnTransform(ctx, observability.TransformEvent{
		Transform: t.Name(),
		Direction: dir.String(),
		InputLen:  len(text),
		OutputLen: len(out),
		Duration:  time.Since(start),
		Err:       err,
	})
	return out, err
}

func apply(t Transform, dir Direction, text string, p Params) (string, error) {
	if t.Needs().Has(NeedsShift) {
		if err := errors.ValidateShift(p.Shift); err != nil {
			return "", err
		}
	}
	if dir == Decode {
		if strings.TrimSpace(text) == "" {
			return "", errors.Empty(t.Name())
		}
		return t.Decode(text, p)
	}
	if text == "" {
		return "", nil
	}
	return t.Encode(text, p)
}
