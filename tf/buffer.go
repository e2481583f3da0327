package tf

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/ros"
)

// DefaultCacheTime is how long a buffer keeps the history of a dynamic frame.
const DefaultCacheTime = 10 * time.Second

// maxGraphDepth bounds tree walks so that a cycle in the published
// transforms cannot hang a lookup.
const maxGraphDepth = 1000

// Buffer stores the transform tree received from broadcasters and answers
// lookups between any two connected frames. It is safe for concurrent use.
type Buffer struct {
	mu        sync.RWMutex
	cacheTime ros.Duration
	frames    map[string]*timeCache
	known     map[string]struct{}
}

// NewBuffer returns an empty buffer keeping cacheTime of history per
// frame. A non-positive cacheTime selects DefaultCacheTime.
func NewBuffer(cacheTime time.Duration) *Buffer {
	if cacheTime <= 0 {
		cacheTime = DefaultCacheTime
	}
	return &Buffer{
		cacheTime: ros.DurationFromGo(cacheTime),
		frames:    make(map[string]*timeCache),
		known:     make(map[string]struct{}),
	}
}

func stripSlash(frame string) string {
	return strings.TrimPrefix(frame, "/")
}

// SetTransform adds ts to the tree. authority names the node that sent it
// and only appears in error messages. Static transforms are valid at every
// time and never expire.
func (b *Buffer) SetTransform(ts geometry_msgs.TransformStamped, authority string, static bool) error {
	child := stripSlash(ts.ChildFrameId)
	parent := stripSlash(ts.Header.FrameId)
	switch {
	case child == "":
		return errors.Errorf("transform from %s has an empty child frame id", authority)
	case parent == "":
		return errors.Errorf("transform %q from %s has an empty frame id", child, authority)
	case child == parent:
		return errors.Errorf("transform %q from %s has the same frame id and child frame id", child, authority)
	}
	t := transformFromMsg(&ts.Transform)
	if !t.valid() {
		return errors.Errorf("transform %q -> %q from %s contains nan or inf", parent, child, authority)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	cache, ok := b.frames[child]
	if !ok || cache.static != static {
		cache = newTimeCache(static, b.cacheTime)
		b.frames[child] = cache
	}
	if err := cache.insert(sample{stamp: ts.Header.Stamp, parent: parent, transform: t}); err != nil {
		return errors.Wrapf(err, "transform %q -> %q from %s", parent, child, authority)
	}
	b.known[child] = struct{}{}
	b.known[parent] = struct{}{}
	return nil
}

// LookupTransform returns the transform that maps points in source into
// target at time at. A zero at selects the latest time for which every
// frame on the path has data. The result's header frame is target and its
// child frame is source.
func (b *Buffer) LookupTransform(target, source string, at ros.Time) (geometry_msgs.TransformStamped, error) {
	target, source = stripSlash(target), stripSlash(source)

	b.mu.RLock()
	defer b.mu.RUnlock()
	t, stamp, err := b.lookup(target, source, at)
	if err != nil {
		return geometry_msgs.TransformStamped{}, err
	}
	return geometry_msgs.TransformStamped{
		Header:       std_msgs.Header{Stamp: stamp, FrameId: target},
		ChildFrameId: source,
		Transform:    t.toMsg(),
	}, nil
}

// CanTransform reports whether LookupTransform would succeed.
func (b *Buffer) CanTransform(target, source string, at ros.Time) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, _, err := b.lookup(stripSlash(target), stripSlash(source), at)
	return err == nil
}

// Frames returns the names of every frame the buffer has seen.
func (b *Buffer) Frames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	frames := make([]string, 0, len(b.known))
	for f := range b.known {
		frames = append(frames, f)
	}
	return frames
}

func (b *Buffer) lookup(target, source string, at ros.Time) (transform, ros.Time, error) {
	for _, f := range []string{target, source} {
		if _, ok := b.known[f]; !ok {
			return transform{}, at, &LookupError{Frame: f}
		}
	}
	if target == source {
		return identity(), at, nil
	}

	sourcePath, err := b.path(source)
	if err != nil {
		return transform{}, at, err
	}
	targetPath, err := b.path(target)
	if err != nil {
		return transform{}, at, err
	}
	ancestor, ok := commonAncestor(sourcePath, targetPath)
	if !ok {
		return transform{}, at, &ConnectivityError{Target: target, Source: source}
	}

	if at.IsZero() {
		at = b.latestCommonTime(sourcePath, targetPath, ancestor)
	}
	toSource, err := b.accumulate(source, ancestor, at)
	if err != nil {
		return transform{}, at, err
	}
	toTarget, err := b.accumulate(target, ancestor, at)
	if err != nil {
		return transform{}, at, err
	}
	return toTarget.inverse().compose(toSource), at, nil
}

// path lists frame and its ancestors up to the root using the newest
// parent of every frame.
func (b *Buffer) path(frame string) ([]string, error) {
	path := []string{frame}
	for len(path) <= maxGraphDepth {
		cache, ok := b.frames[frame]
		if !ok {
			return path, nil
		}
		s, _ := cache.latest()
		frame = s.parent
		path = append(path, frame)
	}
	return nil, &ConnectivityError{Target: path[0], Source: frame, Reason: "the tf tree contains a loop"}
}

func commonAncestor(sourcePath, targetPath []string) (string, bool) {
	inTarget := make(map[string]struct{}, len(targetPath))
	for _, f := range targetPath {
		inTarget[f] = struct{}{}
	}
	for _, f := range sourcePath {
		if _, ok := inTarget[f]; ok {
			return f, true
		}
	}
	return "", false
}

// latestCommonTime is the newest stamp every dynamic frame below ancestor
// has data for. It is zero when the path only has static frames.
func (b *Buffer) latestCommonTime(sourcePath, targetPath []string, ancestor string) ros.Time {
	var common ros.Time
	for _, path := range [][]string{sourcePath, targetPath} {
		for _, f := range path {
			if f == ancestor {
				break
			}
			cache := b.frames[f]
			if cache.static {
				continue
			}
			s, _ := cache.latest()
			if common.IsZero() || s.stamp.Cmp(common) < 0 {
				common = s.stamp
			}
		}
	}
	return common
}

// accumulate composes the transforms from frame up to ancestor at time at,
// giving the pose of frame in ancestor.
func (b *Buffer) accumulate(frame, ancestor string, at ros.Time) (transform, error) {
	acc := identity()
	start := frame
	for depth := 0; frame != ancestor; depth++ {
		if depth > maxGraphDepth {
			return transform{}, &ConnectivityError{Target: ancestor, Source: start, Reason: "the tf tree contains a loop"}
		}
		cache, ok := b.frames[frame]
		if !ok {
			return transform{}, &ConnectivityError{Target: ancestor, Source: start,
				Reason: "frame " + frame + " has no parent at the requested time"}
		}
		s, err := cache.sampleAt(frame, at)
		if err != nil {
			return transform{}, err
		}
		acc = s.transform.compose(acc)
		frame = s.parent
	}
	return acc, nil
}
