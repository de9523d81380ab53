package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSummarizer struct {
	mu   sync.Mutex
	days []time.Time
	err  error
}

func (f *fakeSummarizer) SummarizeDay(day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
	return f.err
}

func (f *fakeSummarizer) calls() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.days...)
}

func TestNextMidnight(t *testing.T) {
	tests := []struct {
		at   time.Time
		want time.Time
	}{
		{
			time.Date(2023, 3, 21, 23, 59, 50, 0, time.Local),
			time.Date(2023, 3, 22, 0, 0, 0, 0, time.Local),
		},
		{
			time.Date(2023, 3, 21, 0, 0, 0, 0, time.Local),
			time.Date(2023, 3, 22, 0, 0, 0, 0, time.Local), // strictly after
		},
		{
			time.Date(2023, 12, 31, 12, 0, 0, 0, time.Local),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		if got := nextMidnight(tt.at); !got.Equal(tt.want) {
			t.Errorf("nextMidnight(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(&fakeSummarizer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunSummarizesYesterdayAtMidnight(t *testing.T) {
	fake := &fakeSummarizer{}
	s := New(fake)

	// Pin the clock just before midnight so the duty cycle fires fast.
	now := time.Date(2023, 3, 22, 23, 59, 59, int(999 * time.Millisecond), time.Local)
	s.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(fake.calls()) == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	day := fake.calls()[0]
	want := time.Date(2023, 3, 21, 0, 0, 0, 0, time.Local)
	if day.Year() != want.Year() || day.Month() != want.Month() || day.Day() != want.Day() {
		t.Fatalf("summarized %v, want yesterday %v", day, want)
	}
}

func TestRunSwallowsSummaryErrors(t *testing.T) {
	fake := &fakeSummarizer{err: errors.New("disk full")}
	s := New(fake)

	var errMu sync.Mutex
	var seen []error
	s.onError = func(err error) {
		errMu.Lock()
		seen = append(seen, err)
		errMu.Unlock()
	}

	now := time.Date(2023, 3, 22, 23, 59, 59, int(999 * time.Millisecond), time.Local)
	s.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(fake.calls()) < 2 {
		select {
		case <-deadline:
			t.Fatal("scheduler stopped after a failed summary")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	errMu.Lock()
	defer errMu.Unlock()
	if len(seen) == 0 {
		t.Fatal("onError was never invoked")
	}
}
