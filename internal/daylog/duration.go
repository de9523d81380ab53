package daylog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/hozoor/internal/jalali"
)

// Log line markers. Segment lines carry durationMarker, summary lines
// end with summaryMarker.
const (
	durationMarker = "مدت:"
	summaryMarker  = "مجموع"
)

// FormatDuration renders d as H:MM:SS. The hours field is unpadded and
// has no upper bound.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatHM renders d in the legacy minute-precision H:MM form, used for
// compact display. Seconds are truncated.
func FormatHM(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int64(d / time.Minute)
	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}

// ParseLine extracts the duration from a log line. It locates the
// duration marker, takes the following whitespace-delimited token and
// parses it as H:MM:SS or the legacy H:MM. Lines without a parsable
// duration return (0, false); they contribute nothing to totals. Log
// files are append-only and may contain foreign or partially written
// lines, so this parser never fails hard.
func ParseLine(line string) (time.Duration, bool) {
	_, rest, found := strings.Cut(line, durationMarker)
	if !found {
		return 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, false
	}
	return parseToken(fields[0])
}

// parseToken parses a H:MM or H:MM:SS token in either digit system.
func parseToken(tok string) (time.Duration, bool) {
	parts := strings.Split(jalali.ToASCIIDigits(tok), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}

	var nums [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}

	d := time.Duration(nums[0])*time.Hour + time.Duration(nums[1])*time.Minute
	if len(parts) == 3 {
		d += time.Duration(nums[2]) * time.Second
	}
	return d, true
}
