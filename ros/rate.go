package ros

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Rate keeps a loop running at a fixed frequency.
type Rate struct {
	clock             clock.Clock
	actualCycleTime   time.Duration
	expectedCycleTime time.Duration
	start             time.Time
}

// NewRate returns a Rate for frequency hz on the wall clock.
func NewRate(frequency float64) *Rate {
	return NewRateWithClock(frequency, clock.New())
}

// NewRateWithClock returns a Rate driven by c.
func NewRateWithClock(frequency float64, c clock.Clock) *Rate {
	return CycleTimeWithClock(time.Duration(float64(time.Second)/frequency), c)
}

// CycleTime returns a Rate with an explicit period.
func CycleTime(d Duration) *Rate {
	return CycleTimeWithClock(d.Go(), clock.New())
}

func CycleTimeWithClock(period time.Duration, c clock.Clock) *Rate {
	return &Rate{clock: c, expectedCycleTime: period, start: c.Now()}
}

// CycleTime is the duration of the last completed cycle.
func (r *Rate) CycleTime() Duration {
	return DurationFromGo(r.actualCycleTime)
}

func (r *Rate) ExpectedCycleTime() Duration {
	return DurationFromGo(r.expectedCycleTime)
}

func (r *Rate) Reset() {
	r.actualCycleTime = 0
	r.start = r.clock.Now()
}

// Sleep blocks for the remainder of the current cycle. When the loop has
// fallen more than a full cycle behind, the schedule restarts from now.
func (r *Rate) Sleep() {
	expectedEnd := r.start.Add(r.expectedCycleTime)
	if remaining := expectedEnd.Sub(r.clock.Now()); remaining > 0 {
		r.clock.Sleep(remaining)
	}
	r.endCycle(expectedEnd)
}

// SleepContext is Sleep that gives up when ctx is done. The cycle is left
// unfinished in that case.
func (r *Rate) SleepContext(ctx context.Context) error {
	expectedEnd := r.start.Add(r.expectedCycleTime)
	if remaining := expectedEnd.Sub(r.clock.Now()); remaining > 0 {
		timer := r.clock.Timer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	r.endCycle(expectedEnd)
	return nil
}

func (r *Rate) endCycle(expectedEnd time.Time) {
	end := r.clock.Now()
	r.actualCycleTime = end.Sub(r.start)
	r.start = expectedEnd
	if end.Sub(expectedEnd) > r.expectedCycleTime {
		r.start = end
	}
}
