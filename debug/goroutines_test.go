package debug

import (
	"log/slog"
	"runtime/metrics"
	"testing"
)

func TestSampleIncludesStats(t *testing.T) {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	attrs := sample(samples, func() []slog.Attr {
		return []slog.Attr{slog.Int("points", 4)}
	})
	var goroutines uint64
	found := false
	for _, a := range attrs {
		switch a.Key {
		case "goroutines":
			goroutines = a.Value.Uint64()
		case "points":
			found = a.Value.Int64() == 4
		}
	}
	if goroutines == 0 {
		t.Fatalf("expected a goroutine count, got attrs %v", attrs)
	}
	if !found {
		t.Fatalf("stats attributes missing: %v", attrs)
	}
}

func TestMemAttrsReportsHeap(t *testing.T) {
	attrs, _ := memAttrs()
	found := false
	for _, a := range attrs {
		if a.Key == "go_sys" && a.Value.Uint64() > 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected go_sys attribute, got %v", attrs)
	}
}
