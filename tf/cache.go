package tf

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/rosgo/frametarget/ros"
)

type sample struct {
	stamp     ros.Time
	parent    string
	transform transform
}

// timeCache holds the history of one child frame, oldest first. A static
// cache keeps a single sample that is valid at every time.
type timeCache struct {
	static  bool
	maxAge  ros.Duration
	samples []sample
}

func newTimeCache(static bool, maxAge ros.Duration) *timeCache {
	return &timeCache{static: static, maxAge: maxAge}
}

func (c *timeCache) insert(s sample) error {
	if c.static {
		c.samples = []sample{s}
		return nil
	}
	if newest, ok := c.latest(); ok {
		if start, ok := c.windowStart(newest.stamp); ok && s.stamp.Cmp(start) < 0 {
			return errors.Errorf("sample at %s is older than the cache window starting at %s", s.stamp, start)
		}
	}

	i := sort.Search(len(c.samples), func(i int) bool {
		return c.samples[i].stamp.Cmp(s.stamp) >= 0
	})
	if i < len(c.samples) && c.samples[i].stamp.Cmp(s.stamp) == 0 {
		c.samples[i] = s
	} else {
		c.samples = append(c.samples, sample{})
		copy(c.samples[i+1:], c.samples[i:])
		c.samples[i] = s
	}
	c.prune()
	return nil
}

// windowStart returns the oldest stamp kept while newest is the latest
// sample; ok is false while the window still reaches back to time zero.
func (c *timeCache) windowStart(newest ros.Time) (ros.Time, bool) {
	if newest.ToNSec() <= c.maxAge.ToNSec() {
		return ros.Time{}, false
	}
	return newest.Sub(c.maxAge), true
}

func (c *timeCache) prune() {
	newest, _ := c.latest()
	cutoff, ok := c.windowStart(newest.stamp)
	if !ok {
		return
	}
	drop := 0
	for drop < len(c.samples)-1 && c.samples[drop].stamp.Cmp(cutoff) < 0 {
		drop++
	}
	c.samples = c.samples[drop:]
}

func (c *timeCache) latest() (sample, bool) {
	if len(c.samples) == 0 {
		return sample{}, false
	}
	return c.samples[len(c.samples)-1], true
}

// sampleAt returns the transform at time t, interpolating between the two
// samples around it. A zero t selects the newest sample.
func (c *timeCache) sampleAt(frame string, t ros.Time) (sample, error) {
	if len(c.samples) == 0 {
		return sample{}, &LookupError{Frame: frame}
	}
	if c.static || t.IsZero() {
		s, _ := c.latest()
		return s, nil
	}
	oldest, newest := c.samples[0], c.samples[len(c.samples)-1]
	if t.Cmp(oldest.stamp) < 0 || t.Cmp(newest.stamp) > 0 {
		return sample{}, &ExtrapolationError{Frame: frame, Requested: t, Earliest: oldest.stamp, Latest: newest.stamp}
	}

	i := sort.Search(len(c.samples), func(i int) bool {
		return c.samples[i].stamp.Cmp(t) >= 0
	})
	after := c.samples[i]
	if after.stamp.Cmp(t) == 0 || i == 0 {
		return after, nil
	}
	before := c.samples[i-1]
	if before.parent != after.parent {
		return before, nil
	}
	span := after.stamp.ToNSec() - before.stamp.ToNSec()
	ratio := float64(t.ToNSec()-before.stamp.ToNSec()) / float64(span)
	return sample{
		stamp:     t,
		parent:    before.parent,
		transform: before.transform.interpolate(after.transform, ratio),
	}, nil
}
