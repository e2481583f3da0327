package frametarget

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rosgo/frametarget/interactivemarkers"
	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
	"github.com/rosgo/frametarget/ros"
	"github.com/rosgo/frametarget/tf"
)

// TransformSource looks up transforms; *tf.Buffer implements it.
type TransformSource interface {
	LookupTransform(target, source string, at ros.Time) (geometry_msgs.TransformStamped, error)
}

// TransformBroadcaster sends transforms; *tf.Broadcaster implements it.
type TransformBroadcaster interface {
	SendTransform(transforms ...geometry_msgs.TransformStamped) error
}

// Spinner dispatches queued callbacks; ros.Node implements it.
type Spinner interface {
	OK() bool
	SpinOnce()
}

// Controller owns the target pose. Feedback, menu actions and broadcasts
// must all run on the goroutine that calls Init and Run.
type Controller struct {
	cfg         Config
	tracking    TrackingService
	transforms  TransformSource
	broadcaster TransformBroadcaster
	server      *interactivemarkers.Server
	menu        *interactivemarkers.MenuHandler
	clock       clock.Clock
	logger      *logrus.Entry

	// callbackCtx bounds the transform wait of menu-triggered resets.
	callbackCtx context.Context
	targetPose  geometry_msgs.PoseStamped
}

// Option customizes a Controller.
type Option func(*Controller)

func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) {
		ctl.clock = c
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(ctl *Controller) {
		ctl.logger = l
	}
}

func NewController(cfg Config, tracking TrackingService, transforms TransformSource,
	broadcaster TransformBroadcaster, server *interactivemarkers.Server, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:         cfg,
		tracking:    tracking,
		transforms:  transforms,
		broadcaster: broadcaster,
		server:      server,
		menu:        interactivemarkers.NewMenuHandler(),
		clock:       clock.New(),
		logger:      ros.ModuleLogger(nil, "frametarget"),
		callbackCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.targetPose = geometry_msgs.PoseStamped{
		Header: std_msgs.Header{FrameId: cfg.BaseFrame},
		Pose:   geometry_msgs.Pose{Orientation: geometry_msgs.Quaternion{W: 1}},
	}
	return c, nil
}

// Init waits for the tracking services and the active frame, then
// publishes the target and menu markers at the active frame's pose. ctx
// also bounds the transform wait of later menu resets.
func (c *Controller) Init(ctx context.Context) error {
	c.callbackCtx = ctx
	if err := c.tracking.WaitForServices(ctx); err != nil {
		return err
	}
	pose, err := c.waitForTransform(ctx)
	if err != nil {
		return err
	}
	c.targetPose = geometry_msgs.PoseStamped{
		Header: std_msgs.Header{Stamp: c.now(), FrameId: c.cfg.BaseFrame},
		Pose:   pose,
	}

	c.server.Insert(newTargetMarker(c.cfg, pose))
	c.server.SetCallback(TargetMarkerName, c.HandleFeedback, interactivemarkers.DefaultFeedback)

	c.menu.Insert(EntryStartTracking, func(*vm.InteractiveMarkerFeedback) { c.StartTracking() })
	c.menu.Insert(EntryStopTracking, func(*vm.InteractiveMarkerFeedback) { c.StopTracking() })
	c.menu.Insert(EntryResetTracking, func(*vm.InteractiveMarkerFeedback) {
		if err := c.ResetTracking(c.callbackCtx); err != nil {
			c.logger.WithError(err).Error("Reset tracking failed")
		}
	})
	c.server.Insert(newMenuMarker(c.cfg))
	c.menu.Apply(c.server, MenuMarkerName)
	c.server.ApplyChanges()
	c.logger.WithField("frame", c.cfg.ActiveFrame).Info("Interactive target ready")
	return nil
}

// waitForTransform polls until the active frame can be located in the base
// frame. Only lookup, connectivity and extrapolation errors are retried.
func (c *Controller) waitForTransform(ctx context.Context) (geometry_msgs.Pose, error) {
	for attempt := 1; ; attempt++ {
		ts, err := c.transforms.LookupTransform(c.cfg.BaseFrame, c.cfg.ActiveFrame, ros.Time{})
		if err == nil {
			return geometry_msgs.Pose{
				Position: geometry_msgs.Point{
					X: ts.Transform.Translation.X,
					Y: ts.Transform.Translation.Y,
					Z: ts.Transform.Translation.Z,
				},
				Orientation: ts.Transform.Rotation,
			}, nil
		}
		if !tf.IsRecoverable(err) {
			return geometry_msgs.Pose{}, errors.Wrapf(err, "look up %s in %s", c.cfg.ActiveFrame, c.cfg.BaseFrame)
		}
		if c.cfg.MaxLookupAttempts > 0 && attempt >= c.cfg.MaxLookupAttempts {
			return geometry_msgs.Pose{}, errors.Wrapf(err, "no transform after %d attempts", attempt)
		}
		c.logger.WithError(err).Warn("Waiting for transform...")
		if err := sleep(ctx, c.clock, c.cfg.RetryInterval); err != nil {
			return geometry_msgs.Pose{}, errors.Wrap(err, "wait for transform")
		}
	}
}

// HandleFeedback adopts the pose a client dragged the target to.
func (c *Controller) HandleFeedback(feedback *vm.InteractiveMarkerFeedback) {
	c.targetPose.Header = feedback.Header
	c.targetPose.Pose = feedback.Pose
	c.server.ApplyChanges()
}

// StartTracking asks the tracker to follow the tracking frame. Failures
// are logged.
func (c *Controller) StartTracking() {
	res, err := c.tracking.StartTracking(c.cfg.TrackingFrame)
	if err != nil {
		c.logger.WithError(err).Error("Service call failed")
		return
	}
	c.logger.WithFields(logrus.Fields{
		"success": res.Success,
		"message": res.Message,
	}).Info(StartTrackingService)
}

// StopTracking asks the tracker to stop. Failures are logged.
func (c *Controller) StopTracking() {
	if err := c.tracking.StopTracking(); err != nil {
		c.logger.WithError(err).Error("Service call failed")
		return
	}
	c.logger.Info(StopTrackingService)
}

// ResetTracking stops the tracker and moves the target back to the
// current pose of the active frame, discarding any drags.
func (c *Controller) ResetTracking(ctx context.Context) error {
	c.StopTracking()
	pose, err := c.waitForTransform(ctx)
	if err != nil {
		return err
	}
	c.targetPose = geometry_msgs.PoseStamped{
		Header: std_msgs.Header{Stamp: c.now(), FrameId: c.cfg.BaseFrame},
		Pose:   pose,
	}
	c.server.SetPose(TargetMarkerName, pose, std_msgs.Header{})
	c.server.ApplyChanges()
	return nil
}

// Broadcast sends the target position as the tracking frame. The rotation
// is the identity unless BroadcastOrientation is set.
func (c *Controller) Broadcast() error {
	rotation := tf.QuaternionFromEuler(0, 0, 0)
	if c.cfg.BroadcastOrientation {
		rotation = c.targetPose.Pose.Orientation
	}
	p := c.targetPose.Pose.Position
	return c.broadcaster.SendTransform(geometry_msgs.TransformStamped{
		Header:       std_msgs.Header{Stamp: c.now(), FrameId: c.targetPose.Header.FrameId},
		ChildFrameId: c.cfg.TrackingFrame,
		Transform: geometry_msgs.Transform{
			Translation: geometry_msgs.Vector3{X: p.X, Y: p.Y, Z: p.Z},
			Rotation:    rotation,
		},
	})
}

// Run dispatches callbacks and broadcasts the target at the configured
// rate until ctx is done or the spinner shuts down.
func (c *Controller) Run(ctx context.Context, spinner Spinner) error {
	rate := ros.CycleTimeWithClock(c.cfg.Period(), c.clock)
	for ctx.Err() == nil && spinner.OK() {
		spinner.SpinOnce()
		if err := c.Broadcast(); err != nil {
			c.logger.WithError(err).Warn("Failed to broadcast target")
		}
		if rate.SleepContext(ctx) != nil {
			break
		}
	}
	return nil
}

// TargetPose returns the current target.
func (c *Controller) TargetPose() geometry_msgs.PoseStamped {
	return c.targetPose
}

func (c *Controller) now() ros.Time {
	return ros.TimeFromGo(c.clock.Now())
}
