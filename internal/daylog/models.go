package daylog

import (
	"time"

	"github.com/sadopc/hozoor/internal/jalali"
)

// Segment is one logged interval of active time, bounded to a single
// calendar day. End may fall on the next day's midnight when the
// segment was clipped there.
type Segment struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// DaySummary is the aggregated activity of one calendar day.
type DaySummary struct {
	Date     time.Time
	Jalali   jalali.Date
	Label    string
	Total    time.Duration
	Segments int
}
