package frametarget

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

type fakeParams struct {
	values map[string]interface{}
	err    error
}

func (p fakeParams) HasParam(name string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	_, ok := p.values[name]
	return ok, nil
}

func (p fakeParams) GetParam(name string) (interface{}, error) {
	v, ok := p.values[name]
	if !ok {
		return nil, errors.Errorf("parameter %s is not set", name)
	}
	return v, nil
}

func TestLoadConfig(t *testing.T) {
	params := fakeParams{values: map[string]interface{}{
		"active_frame":   "arm_7_link",
		"tracking_frame": "tracking_target",
	}}
	got, err := LoadConfig(params, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.ActiveFrame = "arm_7_link"
	want.TrackingFrame = "tracking_target"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		params  fakeParams
		missing bool
	}{
		{
			name:    "no active frame",
			params:  fakeParams{values: map[string]interface{}{"tracking_frame": "target"}},
			missing: true,
		},
		{
			name:    "no tracking frame",
			params:  fakeParams{values: map[string]interface{}{"active_frame": "arm"}},
			missing: true,
		},
		{
			name:    "empty tracking frame",
			params:  fakeParams{values: map[string]interface{}{"active_frame": "arm", "tracking_frame": ""}},
			missing: true,
		},
		{
			name:   "not a string",
			params: fakeParams{values: map[string]interface{}{"active_frame": int32(3), "tracking_frame": "target"}},
		},
		{
			name:   "master unreachable",
			params: fakeParams{err: errors.New("connection refused")},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(tc.params, DefaultConfig())
			if err == nil {
				t.Fatal("LoadConfig succeeded")
			}
			if got := errors.Cause(err) == ErrMissingParameter; got != tc.missing {
				t.Errorf("missing = %v, want %v (err %v)", got, tc.missing, err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.ActiveFrame = "arm"
	valid.TrackingFrame = "target"
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"no active frame", func(c *Config) { c.ActiveFrame = "" }},
		{"no base frame", func(c *Config) { c.BaseFrame = "" }},
		{"zero rate", func(c *Config) { c.Rate = 0 }},
		{"zero retry interval", func(c *Config) { c.RetryInterval = 0 }},
		{"negative attempts", func(c *Config) { c.MaxLookupAttempts = -1 }},
		{"no server topic", func(c *Config) { c.ServerTopic = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate succeeded")
			}
		})
	}
}

func TestConfigPeriod(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.Period(), time.Second/68; got != want {
		t.Errorf("Period = %v, want %v", got, want)
	}
}
