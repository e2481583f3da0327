// Command interactive_frame_target serves a draggable marker whose pose is
// broadcast as the frame tracker's target frame.
//
// Usage:
//
//	interactive_frame_target [flags] [ROS arguments]
//
// The active_frame and tracking_frame parameters are resolved in the node's
// namespace and must be set before the node starts.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rosgo/frametarget/frametarget"
	"github.com/rosgo/frametarget/interactivemarkers"
	"github.com/rosgo/frametarget/ros"
	"github.com/rosgo/frametarget/tf"
)

const nodeName = "interactive_frame_target"

const (
	flagBaseFrame            = "base-frame"
	flagRate                 = "rate"
	flagRetryInterval        = "retry-interval"
	flagMaxLookupAttempts    = "max-lookup-attempts"
	flagServerTopic          = "server-topic"
	flagBroadcastOrientation = "broadcast-orientation"
	flagLogLevel             = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Error("Aborting!")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := frametarget.DefaultConfig()
	return &cli.App{
		Name:            nodeName,
		Usage:           "broadcast an interactively placed target frame for the frame tracker",
		ArgsUsage:       "[ROS arguments]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagBaseFrame,
				Value:   defaults.BaseFrame,
				Usage:   "frame the target pose is expressed in",
				EnvVars: []string{"FRAME_TARGET_BASE_FRAME"},
			},
			&cli.Float64Flag{
				Name:    flagRate,
				Value:   defaults.Rate,
				Usage:   "broadcast frequency in Hz",
				EnvVars: []string{"FRAME_TARGET_RATE"},
			},
			&cli.DurationFlag{
				Name:    flagRetryInterval,
				Value:   defaults.RetryInterval,
				Usage:   "pause between transform lookups and service checks",
				EnvVars: []string{"FRAME_TARGET_RETRY_INTERVAL"},
			},
			&cli.IntFlag{
				Name:    flagMaxLookupAttempts,
				Value:   defaults.MaxLookupAttempts,
				Usage:   "give up after this many failed transform lookups, 0 retries forever",
				EnvVars: []string{"FRAME_TARGET_MAX_LOOKUP_ATTEMPTS"},
			},
			&cli.StringFlag{
				Name:    flagServerTopic,
				Value:   defaults.ServerTopic,
				Usage:   "topic namespace of the interactive marker server",
				EnvVars: []string{"FRAME_TARGET_SERVER_TOPIC"},
			},
			&cli.BoolFlag{
				Name:    flagBroadcastOrientation,
				Usage:   "broadcast the marker orientation instead of the identity rotation",
				EnvVars: []string{"FRAME_TARGET_BROADCAST_ORIENTATION"},
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   logrus.InfoLevel.String(),
				Usage:   "one of panic, fatal, error, warn, info, debug, trace",
				EnvVars: []string{"FRAME_TARGET_LOG_LEVEL"},
			},
		},
		Action: run,
	}
}

// configFromFlags returns the settings given on the command line. The frame
// names are filled in from the parameter server later.
func configFromFlags(c *cli.Context) frametarget.Config {
	cfg := frametarget.DefaultConfig()
	cfg.BaseFrame = c.String(flagBaseFrame)
	cfg.Rate = c.Float64(flagRate)
	cfg.RetryInterval = c.Duration(flagRetryInterval)
	cfg.MaxLookupAttempts = c.Int(flagMaxLookupAttempts)
	cfg.ServerTopic = c.String(flagServerTopic)
	cfg.BroadcastOrientation = c.Bool(flagBroadcastOrientation)
	return cfg
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := ros.NewLogger()
	logger.SetLevel(lvl)
	logger.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{ros.ModuleField, "node", "topic", "service"},
	})
	return logger, nil
}

// menuNamespace returns ns with the trailing slash the menu marker label
// carries, e.g. /arm/.
func menuNamespace(ns string) string {
	if !strings.HasSuffix(ns, ros.GlobalNS) {
		ns += ros.GlobalNS
	}
	return ns
}

// bringUpFunc connects the controller to the transform tree, the marker
// server and the tracking service. The returned func releases them.
type bringUpFunc func(cfg frametarget.Config) (*frametarget.Controller, func(), error)

// setup resolves the frame names from params before anything talks to the
// transform tree or the tracking service.
func setup(params frametarget.ParamSource, base frametarget.Config, bringUp bringUpFunc) (*frametarget.Controller, func(), error) {
	cfg, err := frametarget.LoadConfig(params, base)
	if err != nil {
		return nil, nil, err
	}
	return bringUp(cfg)
}

func rosBringUp(node ros.Node, logger *logrus.Logger, log *logrus.Entry) bringUpFunc {
	return func(cfg frametarget.Config) (ctl *frametarget.Controller, _ func(), err error) {
		var shutdown []func()
		release := func() {
			for i := len(shutdown) - 1; i >= 0; i-- {
				shutdown[i]()
			}
		}
		defer func() {
			if err != nil {
				release()
			}
		}()

		buffer := tf.NewBuffer(tf.DefaultCacheTime)
		listener, err := tf.NewListener(node, buffer)
		if err != nil {
			return nil, nil, err
		}
		shutdown = append(shutdown, listener.Shutdown)
		broadcaster, err := tf.NewBroadcaster(node)
		if err != nil {
			return nil, nil, err
		}
		shutdown = append(shutdown, broadcaster.Shutdown)
		server, err := interactivemarkers.NewServer(node, cfg.ServerTopic,
			interactivemarkers.WithLogger(ros.ModuleLogger(logger, "interactivemarkers")))
		if err != nil {
			return nil, nil, err
		}
		shutdown = append(shutdown, server.Shutdown)
		tracking := frametarget.NewRosTrackingService(node, clock.New(), cfg.RetryInterval, log)
		shutdown = append(shutdown, tracking.Shutdown)

		ctl, err = frametarget.NewController(cfg, tracking, buffer, broadcaster, server, frametarget.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return ctl, release, nil
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.String(flagLogLevel))
	if err != nil {
		return err
	}
	log := ros.ModuleLogger(logger, "frametarget")

	node, err := ros.NewNode(nodeName, c.Args().Slice(), ros.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "start node")
	}
	defer node.Shutdown()

	base := configFromFlags(c)
	base.Namespace = menuNamespace(node.Namespace())
	ctl, release, err := setup(node, base, rosBringUp(node, logger, log))
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := ctl.Init(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return ctl.Run(ctx, node)
}
