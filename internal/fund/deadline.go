package fund

import (
	"fmt"
	"time"
)

const (
	// unixThreshold separates Unix-timestamp deadlines from block-height
	// deadlines by magnitude. Values this large cannot be plausible block
	// heights; values below it could in principle be either, so the split
	// is a heuristic, not ground truth.
	unixThreshold = 1_000_000_000

	// avgBlockInterval is the assumed average block production interval
	// used to estimate wall-clock time for block-height deadlines.
	avgBlockInterval = 10 * time.Minute

	// NoDeadline is shown for campaigns without a deadline.
	NoDeadline = "No deadline"
)

const deadlineTimeFormat = "2006-01-02 15:04 MST"

// FormatDeadline renders a raw deadline value for display. The raw value is
// either a Unix timestamp or a block height; tipHeight is the current chain
// tip when known, or 0.
func FormatDeadline(raw int64, tipHeight int64) string {
	return formatDeadlineAt(raw, tipHeight, time.Now())
}

func formatDeadlineAt(raw, tipHeight int64, now time.Time) string {
	if raw <= 0 {
		return NoDeadline
	}

	if raw > unixThreshold {
		return time.Unix(raw, 0).Format(deadlineTimeFormat)
	}

	// Block-height deadline. Estimate wall-clock time while the tip is known
	// and still below the deadline; otherwise show the raw block number.
	if tipHeight > 0 && tipHeight < raw {
		eta := now.Add(time.Duration(raw-tipHeight) * avgBlockInterval)
		return fmt.Sprintf("~%s (block %d)", eta.Format(deadlineTimeFormat), raw)
	}

	return fmt.Sprintf("Block #%d", raw)
}
