package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and the session counters supplied by
// the app at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StatsFunc returns extra attributes logged with every sample. It is called
// from the logger goroutine and must only read concurrency-safe state.
type StatsFunc func() []slog.Attr

// StartGoroutineLogger launches a ticker that logs goroutine count, stack
// memory and the attributes returned by stats (which may be nil).
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger, stats StatsFunc) {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		return
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for range t.C {
			logger.LogAttrs(context.Background(), slog.LevelInfo, "goroutine-stacks", sample(samples, stats)...)
		}
	}()
}

func sample(samples []metrics.Sample, stats StatsFunc) []slog.Attr {
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []slog.Attr{
		slog.Uint64("goroutines", goroutines),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("stack_sys", ms.StackSys),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
	}
	if stats != nil {
		attrs = append(attrs, stats()...)
	}
	return attrs
}
