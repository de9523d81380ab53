// Package scheduler runs the once-per-day midnight duty cycle that
// summarizes the day that just ended.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Summarizer writes the daily summary for a calendar day.
// *daylog.Store satisfies it.
type Summarizer interface {
	SummarizeDay(day time.Time) error
}

// Scheduler sleeps until the next local midnight, summarizes yesterday,
// and repeats. Cancellation comes from the context passed to Run; there
// is no ambient stop flag.
type Scheduler struct {
	summarizer Summarizer
	now        func() time.Time
	onError    func(error)
}

func New(s Summarizer) *Scheduler {
	return &Scheduler{
		summarizer: s,
		now:        time.Now,
		onError: func(err error) {
			fmt.Fprintf(os.Stderr, "midnight summary: %v\n", err)
		},
	}
}

// Run blocks until ctx is cancelled. A failed summary is reported and
// swallowed; the loop stays alive for the next midnight. A day whose
// summary failed is not retried intra-day — its segment lines remain on
// disk and can be summarized later via the summarize command.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := nextMidnight(s.now()).Sub(s.now())
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		yesterday := s.now().AddDate(0, 0, -1)
		if err := s.summarizer.SummarizeDay(yesterday); err != nil && s.onError != nil {
			s.onError(err)
		}
	}
}

// nextMidnight returns the local midnight strictly after t.
func nextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
