package tilebatch

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Registry debug flag so that
// batches created outside a registry also report warnings.
var globalDebug bool

// SetDebug toggles package-wide diagnostics on stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// FrameStats holds the counters for the most recent Render call.
type FrameStats struct {
	Tiles      int // tiles enqueued
	Batches    int // batches with at least one request
	DrawCalls  int // successful backend submissions
	Discarded  int // requests dropped by a failed frame
	RenderTime time.Duration
}

// debugLog prints frame stats to stderr.
func debugLog(stats FrameStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilebatch] tiles: %d | batches: %d | draw calls: %d | discarded: %d | render: %v\n",
		stats.Tiles, stats.Batches, stats.DrawCalls, stats.Discarded, stats.RenderTime)
}

func debugWarnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tilebatch] warning: "+format+"\n", args...)
}
