package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snakecodec/pkg/observability"
)

// logHooks writes observability events as debug records.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetTransformHooks(h)
	observability.SetStoreHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnTransform(_ context.Context, e observability.TransformEvent) {
	kv := []any{
		"transform", e.Transform,
		"direction", e.Direction,
		"in", e.InputLen,
		"out", e.OutputLen,
		"took", e.Duration.Round(time.Microsecond),
	}
	if e.Err != nil {
		kv = append(kv, "err", e.Err)
	}
	h.logger.Debug("transform", kv...)
}

func (h logHooks) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	kv := []any{"backend", backend, "op", op, "took", d.Round(time.Microsecond)}
	if err != nil {
		kv = append(kv, "err", err)
	}
	h.logger.Debug("history", kv...)
}

func (h logHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("route", "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
}
