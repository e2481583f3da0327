package tf

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rosgo/frametarget/ros"
)

// LookupError reports a frame the buffer has never heard of.
type LookupError struct {
	Frame string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%q passed to lookupTransform argument does not exist", e.Frame)
}

// ConnectivityError reports two frames that are not part of the same tree.
type ConnectivityError struct {
	Target string
	Source string
	Reason string
}

func (e *ConnectivityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("could not find a connection between %q and %q: %s", e.Target, e.Source, e.Reason)
	}
	return fmt.Sprintf("could not find a connection between %q and %q because they are not part of the same tree", e.Target, e.Source)
}

// ExtrapolationError reports a lookup time outside the cached range of a frame.
type ExtrapolationError struct {
	Frame     string
	Requested ros.Time
	Earliest  ros.Time
	Latest    ros.Time
}

func (e *ExtrapolationError) Error() string {
	direction := "future"
	if e.Requested.Cmp(e.Earliest) < 0 {
		direction = "past"
	}
	return fmt.Sprintf("lookup would require extrapolation into the %s: requested time %s for frame %q but the data spans [%s, %s]",
		direction, e.Requested, e.Frame, e.Earliest, e.Latest)
}

// IsRecoverable reports whether err is a transient lookup failure that may
// succeed once more transforms have arrived.
func IsRecoverable(err error) bool {
	switch errors.Cause(err).(type) {
	case *LookupError, *ConnectivityError, *ExtrapolationError:
		return true
	}
	return false
}
