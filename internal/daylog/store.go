// Package daylog reads and writes per-day plain-text activity logs.
// Each Gregorian calendar day owns one append-only UTF-8 file named
// YYYY-MM-DD.txt containing segment lines and, once the day is closed,
// a single localized summary line.
package daylog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/hozoor/internal/jalali"
)

const fileExt = ".txt"

// Store owns a directory of per-day log files. It assumes single-process
// ownership; appends rely on the OS append-mode guarantees only.
type Store struct {
	dir    string
	digits bool // write Persian digits

	now func() time.Time
}

// New creates (if needed) the log directory and returns a store over it.
// When persianDigits is set, written lines use Persian numerals; parsing
// accepts both digit systems regardless.
func New(dir string, persianDigits bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &Store{dir: dir, digits: persianDigits, now: time.Now}, nil
}

// Dir returns the log directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the log file path for the calendar day of t.
func (s *Store) Path(t time.Time) string {
	return filepath.Join(s.dir, t.Format("2006-01-02")+fileExt)
}

// LogSession appends the interval [start, end] to the log, split at
// local midnight boundaries so that every written segment falls on a
// single calendar day. A session crossing N midnights produces exactly
// N+1 lines across N+1 files. Calling it twice double-logs; the caller
// invokes it exactly once per toggle-off.
func (s *Store) LogSession(start, end time.Time) error {
	if end.Before(start) {
		end = start
	}

	cur := start
	for {
		segEnd := end
		if next := nextMidnight(cur); next.Before(end) {
			segEnd = next
		}
		if err := s.logSegment(cur, segEnd); err != nil {
			return err
		}
		if !segEnd.Before(end) {
			return nil
		}
		cur = segEnd
	}
}

// logSegment writes one segment line to the file of start's day. The
// duration is floored at one second so a sub-second session never
// produces a zero-duration record.
func (s *Store) logSegment(start, end time.Time) error {
	dur := end.Sub(start)
	if dur < time.Second {
		dur = time.Second
	}

	line := fmt.Sprintf("از %s تا %s — %s %s",
		start.Format("15:04:05"), end.Format("15:04:05"),
		durationMarker, FormatDuration(dur))
	if s.digits {
		line = jalali.ToPersianDigits(line)
	}
	return s.appendLine(s.Path(start), line)
}

// SummarizeDay appends the localized summary line for the given day.
// A day with no log file was never active and is skipped silently.
// The call is idempotent: if the last non-empty line already carries
// the summary marker, nothing is written.
func (s *Store) SummarizeDay(day time.Time) error {
	path := s.Path(day)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if strings.Contains(lastNonEmpty(lines), summaryMarker) {
		return nil
	}

	var total time.Duration
	for _, ln := range lines {
		if d, ok := ParseLine(ln); ok {
			total += d
		}
	}

	totalStr := FormatDuration(total)
	if s.digits {
		totalStr = jalali.ToPersianDigits(totalStr)
	}
	line := fmt.Sprintf("%s — %s %s", jalali.DateLabel(day, s.digits), totalStr, summaryMarker)
	return s.appendLine(path, line)
}

// DayTotal sums the durations of every parsable line in the day's log.
// A missing file is a zero total, not an error.
func (s *Store) DayTotal(day time.Time) (time.Duration, error) {
	path := s.Path(day)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var total time.Duration
	for _, ln := range strings.Split(string(data), "\n") {
		if d, ok := ParseLine(ln); ok {
			total += d
		}
	}
	return total, nil
}

// TodayTotal returns the running total for the current calendar day.
func (s *Store) TodayTotal() (time.Duration, error) {
	return s.DayTotal(s.now())
}

// Segments parses the full segment records of a day's log. Summary and
// foreign lines are skipped. A segment clipped at midnight has its end
// on the following day.
func (s *Store) Segments(day time.Time) ([]Segment, error) {
	path := s.Path(day)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var segments []Segment
	for _, ln := range strings.Split(string(data), "\n") {
		if seg, ok := parseSegment(ln, day); ok {
			segments = append(segments, seg)
		}
	}
	return segments, nil
}

// Totals aggregates per-day summaries for every day in [from, to).
// Days without a log file appear with a zero total.
func (s *Store) Totals(from, to time.Time) ([]DaySummary, error) {
	var out []DaySummary
	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		total, err := s.DayTotal(day)
		if err != nil {
			return nil, err
		}
		segs, err := s.Segments(day)
		if err != nil {
			return nil, err
		}
		out = append(out, DaySummary{
			Date:     day,
			Jalali:   jalali.FromTime(day),
			Label:    jalali.DateLabel(day, s.digits),
			Total:    total,
			Segments: len(segs),
		})
	}
	return out, nil
}

func (s *Store) appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return f.Close()
}

// parseSegment parses a "از START تا END — مدت: D" line. The clock
// fields may be H:MM:SS or legacy H:MM, in either digit system. An end
// clock earlier than the start clock means the segment was clipped at
// midnight and the end belongs to the next day.
func parseSegment(line string, day time.Time) (Segment, bool) {
	dur, ok := ParseLine(line)
	if !ok {
		return Segment{}, false
	}

	ascii := strings.TrimSpace(jalali.ToASCIIDigits(line))
	rest, found := strings.CutPrefix(ascii, "از ")
	if !found {
		return Segment{}, false
	}
	startTok, rest, found := strings.Cut(rest, " تا ")
	if !found {
		return Segment{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Segment{}, false
	}

	start, ok := parseClock(startTok, day)
	if !ok {
		return Segment{}, false
	}
	end, ok := parseClock(fields[0], day)
	if !ok {
		return Segment{}, false
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return Segment{Start: start, End: end, Duration: dur}, true
}

func parseClock(tok string, day time.Time) (time.Time, bool) {
	d, ok := parseToken(tok)
	if !ok || d >= 24*time.Hour {
		return time.Time{}, false
	}
	return startOfDay(day).Add(d), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextMidnight returns the local midnight strictly after t.
func nextMidnight(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}

func lastNonEmpty(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s
		}
	}
	return ""
}
