package ros

import "time"

// Duration is a signed ROS time span.
type Duration struct {
	Sec  int32
	NSec int32
}

// NewDuration creates a normalized Duration.
func NewDuration(sec int32, nsec int32) Duration {
	s, ns := normalizeDuration(int64(sec), int64(nsec))
	return Duration{s, ns}
}

// DurationFromGo converts a time.Duration.
func DurationFromGo(d time.Duration) Duration {
	s, ns := normalizeDuration(0, int64(d))
	return Duration{s, ns}
}

// Go converts d to a time.Duration.
func (d Duration) Go() time.Duration {
	return time.Duration(d.ToNSec())
}

func (d Duration) IsZero() bool {
	return d.Sec == 0 && d.NSec == 0
}

func (d Duration) ToSec() float64 {
	return float64(d.Sec) + float64(d.NSec)*1e-9
}

func (d Duration) ToNSec() int64 {
	return int64(d.Sec)*nsecPerSec + int64(d.NSec)
}

func (d *Duration) FromSec(sec float64) {
	d.FromNSec(int64(sec * 1e9))
}

func (d *Duration) FromNSec(nsec int64) {
	d.Sec, d.NSec = normalizeDuration(0, nsec)
}

func (d Duration) Add(other Duration) Duration {
	s, ns := normalizeDuration(int64(d.Sec)+int64(other.Sec), int64(d.NSec)+int64(other.NSec))
	return Duration{s, ns}
}

func (d Duration) Sub(other Duration) Duration {
	s, ns := normalizeDuration(int64(d.Sec)-int64(other.Sec), int64(d.NSec)-int64(other.NSec))
	return Duration{s, ns}
}

func (d Duration) Cmp(other Duration) int {
	return cmpInt64(d.ToNSec(), other.ToNSec())
}

// Sleep pauses the calling goroutine for d. Negative durations return at once.
func (d Duration) Sleep() {
	if d.ToNSec() > 0 {
		time.Sleep(d.Go())
	}
}

func (d Duration) String() string {
	return d.Go().String()
}
