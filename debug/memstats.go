package debug

// Resident set logger for debug runs. Decoded frames live in Go memory while
// Tk photos live in the C heap, so RSS is logged next to the Go heap to tell
// the two apart.

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs process RSS and Go heap figures every interval until
// the process exits. An RSS query failure is reported once.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		warned := false
		for range ticker.C {
			attrs, err := memAttrs()
			if err != nil && !warned {
				logger.Warn("rss unavailable", "error", err)
				warned = true
			}
			logger.LogAttrs(context.Background(), slog.LevelInfo, "memstats", attrs...)
		}
	}()
}

func memAttrs() ([]slog.Attr, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	rss, err := processRSS()
	gap := int64(rss) - int64(ms.Sys)
	return []slog.Attr{
		slog.Uint64("rss", rss),
		slog.Uint64("go_sys", ms.Sys),
		slog.Int64("non_go", gap),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}, err
}
