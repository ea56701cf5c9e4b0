package correlate

// TruncationMarker is appended whenever retained content had to be cut, so
// downstream consumers can tell a short diff from a bounded one.
const TruncationMarker = "... (truncated)"

// Truncate bounds s to max bytes. Content within the bound is returned
// unchanged; content beyond it is cut and marked. max <= 0 means unbounded.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "\n" + TruncationMarker
}
