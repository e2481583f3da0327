package main

import (
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rosgo/frametarget/frametarget"
)

// parse runs the app with an action that records the parsed configuration.
func parse(t *testing.T, args ...string) (frametarget.Config, []string) {
	t.Helper()
	var cfg frametarget.Config
	var rest []string
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	app.Action = func(c *cli.Context) error {
		cfg = configFromFlags(c)
		rest = c.Args().Slice()
		return nil
	}
	if err := app.Run(append([]string{nodeName}, args...)); err != nil {
		t.Fatalf("Run(%q): %v", args, err)
	}
	return cfg, rest
}

func TestConfigFromFlags(t *testing.T) {
	defaults := frametarget.DefaultConfig()
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		want     frametarget.Config
		wantRest []string
	}{
		{
			name: "defaults",
			want: defaults,
		},
		{
			name: "flags",
			args: []string{
				"--base-frame", "odom_combined",
				"--rate", "10",
				"--retry-interval", "250ms",
				"--max-lookup-attempts", "3",
				"--server-topic", "target_server",
				"--broadcast-orientation",
			},
			want: frametarget.Config{
				BaseFrame:            "odom_combined",
				Rate:                 10,
				RetryInterval:        250 * time.Millisecond,
				MaxLookupAttempts:    3,
				BroadcastOrientation: true,
				ServerTopic:          "target_server",
				Namespace:            defaults.Namespace,
			},
		},
		{
			name: "environment",
			env: map[string]string{
				"FRAME_TARGET_BASE_FRAME": "torso_link",
				"FRAME_TARGET_RATE":       "20",
			},
			want: func() frametarget.Config {
				cfg := defaults
				cfg.BaseFrame = "torso_link"
				cfg.Rate = 20
				return cfg
			}(),
		},
		{
			name:     "ros arguments",
			args:     []string{"--rate", "5", "__name:=target", "_active_frame:=arm_7_link"},
			wantRest: []string{"__name:=target", "_active_frame:=arm_7_link"},
			want: func() frametarget.Config {
				cfg := defaults
				cfg.Rate = 5
				return cfg
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, rest := parse(t, tt.args...)
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
			if len(rest) == 0 {
				rest = nil
			}
			if diff := cmp.Diff(tt.wantRest, rest); diff != "" {
				t.Errorf("rest arguments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestMenuNamespace(t *testing.T) {
	for _, tc := range []struct {
		ns, want string
	}{
		{"/", "/"},
		{"/arm", "/arm/"},
		{"/arm/", "/arm/"},
		{"/robot/arm", "/robot/arm/"},
	} {
		if got := menuNamespace(tc.ns); got != tc.want {
			t.Errorf("menuNamespace(%q) = %q, want %q", tc.ns, got, tc.want)
		}
	}
}

type paramMap map[string]interface{}

func (p paramMap) HasParam(name string) (bool, error) {
	_, ok := p[name]
	return ok, nil
}

func (p paramMap) GetParam(name string) (interface{}, error) {
	v, ok := p[name]
	if !ok {
		return nil, errors.Errorf("parameter %s is not set", name)
	}
	return v, nil
}

func TestSetup(t *testing.T) {
	base := frametarget.DefaultConfig()
	base.Namespace = "/arm/"
	params := paramMap{"active_frame": "arm_7_link", "tracking_frame": "tracking_target"}

	var got frametarget.Config
	released := false
	_, release, err := setup(params, base, func(cfg frametarget.Config) (*frametarget.Controller, func(), error) {
		got = cfg
		return nil, func() { released = true }, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := base
	want.ActiveFrame = "arm_7_link"
	want.TrackingFrame = "tracking_target"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	release()
	if !released {
		t.Error("release did not reach the brought up components")
	}
}

func TestSetupMissingParameter(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params paramMap
	}{
		{"no parameters", paramMap{}},
		{"no active_frame", paramMap{"tracking_frame": "tracking_target"}},
		{"no tracking_frame", paramMap{"active_frame": "arm_7_link"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := setup(tc.params, frametarget.DefaultConfig(), func(frametarget.Config) (*frametarget.Controller, func(), error) {
				t.Fatal("transforms and services brought up without the frame parameters")
				return nil, nil, nil
			})
			if !errors.Is(err, frametarget.ErrMissingParameter) {
				t.Errorf("setup() error = %v, want ErrMissingParameter", err)
			}
		})
	}
}
