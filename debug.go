package quill

import (
	"fmt"
	"log/slog"
	"time"
)

// frameStats holds per-frame timing and node metrics.
// Timings are only populated when Stage.debug is true.
type frameStats struct {
	prepareTime     time.Duration
	blitTime        time.Duration
	fieldCount      int
	relayoutCount   int
	rasterizedCount int
	failedCount     int
	blitCount       int
}

// debugLog logs timing and node stats at debug level.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	Logger().Debug("quill frame",
		slog.Duration("prepare", stats.prepareTime),
		slog.Duration("blit", stats.blitTime),
		slog.Duration("total", stats.prepareTime+stats.blitTime),
		slog.Int("fields", stats.fieldCount),
		slog.Int("relayouts", stats.relayoutCount),
		slog.Int("rasterized", stats.rasterizedCount),
		slog.Int("failed", stats.failedCount),
		slog.Int("blits", stats.blitCount),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed field
// is used in a stage operation. Only called in debug mode.
func debugCheckDisposed(tf *TextField, op string) {
	if tf.disposed {
		panic(fmt.Sprintf("quill debug: %s on disposed text field %q", op, tf.Name))
	}
}

// debugMaxFieldCount is the field count above which debug mode warns.
const debugMaxFieldCount = 1000

func debugCheckFieldCount(s *Stage) {
	if len(s.fields) > debugMaxFieldCount {
		Logger().Warn("quill: stage field count exceeds threshold",
			"fields", len(s.fields),
			"threshold", debugMaxFieldCount,
		)
	}
}
