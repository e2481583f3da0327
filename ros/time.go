package ros

import (
	"fmt"
	gotime "time"
)

// Time is a ROS time instant: seconds and nanoseconds since the epoch.
type Time struct {
	Sec  uint32
	NSec uint32
}

// NewTime creates a normalized Time.
func NewTime(sec uint32, nsec uint32) Time {
	s, ns := normalizeTime(int64(sec), int64(nsec))
	return Time{s, ns}
}

// Now returns the current wall-clock time.
func Now() Time {
	return TimeFromGo(gotime.Now())
}

// TimeFromGo converts a time.Time.
func TimeFromGo(t gotime.Time) Time {
	s, ns := normalizeTime(0, t.UnixNano())
	return Time{s, ns}
}

// Go converts t to a time.Time.
func (t Time) Go() gotime.Time {
	return gotime.Unix(int64(t.Sec), int64(t.NSec))
}

// IsZero reports whether t is the zero time, which lookups treat as "latest".
func (t Time) IsZero() bool {
	return t.Sec == 0 && t.NSec == 0
}

func (t Time) ToSec() float64 {
	return float64(t.Sec) + float64(t.NSec)*1e-9
}

func (t Time) ToNSec() int64 {
	return int64(t.Sec)*nsecPerSec + int64(t.NSec)
}

func (t *Time) FromSec(sec float64) {
	t.FromNSec(int64(sec * 1e9))
}

func (t *Time) FromNSec(nsec int64) {
	t.Sec, t.NSec = normalizeTime(0, nsec)
}

// Diff returns t - from.
func (t Time) Diff(from Time) Duration {
	s, ns := normalizeDuration(int64(t.Sec)-int64(from.Sec), int64(t.NSec)-int64(from.NSec))
	return Duration{s, ns}
}

func (t Time) Add(d Duration) Time {
	s, ns := normalizeTime(int64(t.Sec)+int64(d.Sec), int64(t.NSec)+int64(d.NSec))
	return Time{s, ns}
}

func (t Time) Sub(d Duration) Time {
	s, ns := normalizeTime(int64(t.Sec)-int64(d.Sec), int64(t.NSec)-int64(d.NSec))
	return Time{s, ns}
}

func (t Time) Cmp(other Time) int {
	return cmpInt64(t.ToNSec(), other.ToNSec())
}

func (t Time) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.NSec)
}
