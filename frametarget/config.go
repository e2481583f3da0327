// Package frametarget implements the interactive frame target: a draggable
// marker whose pose is broadcast as the tracking frame, with a menu that
// starts, stops and resets a frame tracker.
package frametarget

import (
	"time"

	"github.com/pkg/errors"
)

const (
	ParamActiveFrame   = "active_frame"
	ParamTrackingFrame = "tracking_frame"
)

// ErrMissingParameter is the cause of every error LoadConfig returns for an
// absent or empty parameter.
var ErrMissingParameter = errors.New("missing required parameter")

// Config holds the controller settings.
type Config struct {
	// ActiveFrame is the frame whose current pose seeds the target.
	ActiveFrame string
	// TrackingFrame is the frame the target pose is broadcast as.
	TrackingFrame string
	BaseFrame     string

	// Rate is the broadcast frequency in Hz.
	Rate          float64
	RetryInterval time.Duration
	// MaxLookupAttempts bounds the transform retry loops; 0 retries
	// until the context is done.
	MaxLookupAttempts int
	// BroadcastOrientation sends the marker orientation instead of the
	// identity rotation.
	BroadcastOrientation bool

	ServerTopic string
	// Namespace labels the menu marker.
	Namespace string
}

// DefaultConfig returns the settings used when no flag overrides them.
func DefaultConfig() Config {
	return Config{
		BaseFrame:     "base_link",
		Rate:          68,
		RetryInterval: 100 * time.Millisecond,
		ServerTopic:   "marker_server",
		Namespace:     "/",
	}
}

func (c Config) Validate() error {
	switch {
	case c.ActiveFrame == "":
		return errors.Wrap(ErrMissingParameter, ParamActiveFrame)
	case c.TrackingFrame == "":
		return errors.Wrap(ErrMissingParameter, ParamTrackingFrame)
	case c.BaseFrame == "":
		return errors.New("base frame must not be empty")
	case c.Rate <= 0:
		return errors.Errorf("rate must be positive, got %v", c.Rate)
	case c.RetryInterval <= 0:
		return errors.Errorf("retry interval must be positive, got %v", c.RetryInterval)
	case c.MaxLookupAttempts < 0:
		return errors.Errorf("max lookup attempts must not be negative, got %d", c.MaxLookupAttempts)
	case c.ServerTopic == "":
		return errors.New("marker server topic must not be empty")
	}
	return nil
}

// Period is the time between two broadcasts.
func (c Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / c.Rate)
}

// ParamSource reads parameters; ros.Node implements it.
type ParamSource interface {
	HasParam(name string) (bool, error)
	GetParam(name string) (interface{}, error)
}

// LoadConfig fills the frame names of base from params and validates the
// result.
func LoadConfig(params ParamSource, base Config) (Config, error) {
	cfg := base
	for _, p := range []struct {
		name string
		dst  *string
	}{
		{ParamActiveFrame, &cfg.ActiveFrame},
		{ParamTrackingFrame, &cfg.TrackingFrame},
	} {
		value, err := stringParam(params, p.name)
		if err != nil {
			return Config{}, err
		}
		*p.dst = value
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func stringParam(params ParamSource, name string) (string, error) {
	ok, err := params.HasParam(name)
	if err != nil {
		return "", errors.Wrapf(err, "check parameter %s", name)
	}
	if !ok {
		return "", errors.Wrapf(ErrMissingParameter, "no %s specified", name)
	}
	value, err := params.GetParam(name)
	if err != nil {
		return "", errors.Wrapf(err, "get parameter %s", name)
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.Errorf("parameter %s is %T, want a frame name", name, value)
	}
	if s == "" {
		return "", errors.Wrapf(ErrMissingParameter, "%s is empty", name)
	}
	return s, nil
}
