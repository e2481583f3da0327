// Package interactivemarkers serves interactive markers to visualization
// clients over the update, update_full and feedback topics.
package interactivemarkers

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
	"github.com/rosgo/frametarget/ros"
)

// DefaultFeedback registers a callback for every event type that has no
// callback of its own.
const DefaultFeedback uint8 = 255

const (
	DefaultKeepAliveInterval = 500 * time.Millisecond

	// Feedback from a second client is ignored until the first one has
	// been quiet for this long.
	clientSwitchInterval = time.Second
)

// FeedbackFunc handles feedback sent by a client for one marker.
type FeedbackFunc func(feedback *vm.InteractiveMarkerFeedback)

type updateKind int

const (
	fullUpdate updateKind = iota
	poseUpdate
	eraseUpdate
)

type markerContext struct {
	marker       vm.InteractiveMarker
	lastFeedback time.Time
	lastClientID string
	callbacks    map[uint8]FeedbackFunc
}

type updateContext struct {
	kind      updateKind
	marker    vm.InteractiveMarker
	callbacks map[uint8]FeedbackFunc
}

// Server keeps a set of interactive markers and publishes changes to them
// when ApplyChanges is called. Feedback callbacks run on the goroutine
// that delivers feedback, which for a server created by NewServer is the
// node's spin goroutine.
type Server struct {
	mu       sync.Mutex
	serverID string
	seqNum   uint64
	markers  map[string]*markerContext
	pending  map[string]*updateContext

	updatePub   ros.Publisher
	initPub     ros.Publisher
	feedbackSub ros.Subscriber

	clock             clock.Clock
	keepAliveInterval time.Duration
	logger            *logrus.Entry

	quit         chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once
}

// Option customizes a Server.
type Option func(*Server)

// WithClock drives the keep-alive timer and feedback bookkeeping from c.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithKeepAliveInterval changes how often keep-alive updates are sent.
func WithKeepAliveInterval(d time.Duration) Option {
	return func(s *Server) {
		s.keepAliveInterval = d
	}
}

// WithLogger replaces the server's log entry.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer advertises topicNS/update and the latched topicNS/update_full
// on node and listens for client feedback on topicNS/feedback.
func NewServer(node ros.Node, topicNS string, opts ...Option) (*Server, error) {
	updatePub, err := node.NewPublisher(topicNS+"/update", vm.MsgInteractiveMarkerUpdate)
	if err != nil {
		return nil, errors.Wrap(err, "advertise update topic")
	}
	initPub, err := node.NewLatchedPublisher(topicNS+"/update_full", vm.MsgInteractiveMarkerInit)
	if err != nil {
		updatePub.Shutdown()
		return nil, errors.Wrap(err, "advertise update_full topic")
	}
	opts = append([]Option{WithLogger(node.Logger().WithField(ros.ModuleField, "interactivemarkers"))}, opts...)
	s := NewServerWithPublishers(node.Name(), updatePub, initPub, opts...)

	sub, err := node.NewSubscriber(topicNS+"/feedback", vm.MsgInteractiveMarkerFeedback, s.ProcessFeedback)
	if err != nil {
		s.Shutdown()
		return nil, errors.Wrap(err, "subscribe to feedback topic")
	}
	s.mu.Lock()
	s.feedbackSub = sub
	s.mu.Unlock()
	return s, nil
}

// NewServerWithPublishers creates a server that publishes through the
// given publishers. Feedback is delivered by calling ProcessFeedback.
func NewServerWithPublishers(serverID string, updatePub, initPub ros.Publisher, opts ...Option) *Server {
	s := &Server{
		serverID:          serverID,
		markers:           make(map[string]*markerContext),
		pending:           make(map[string]*updateContext),
		updatePub:         updatePub,
		initPub:           initPub,
		clock:             clock.New(),
		keepAliveInterval: DefaultKeepAliveInterval,
		logger:            ros.ModuleLogger(nil, "interactivemarkers"),
		quit:              make(chan struct{}),
		done:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("server", serverID)

	s.mu.Lock()
	s.publishInit()
	s.mu.Unlock()

	ticker := s.clock.Ticker(s.keepAliveInterval)
	go s.keepAlive(ticker)
	return s
}

func (s *Server) keepAlive(ticker *clock.Ticker) {
	defer close(s.done)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.publish(&vm.InteractiveMarkerUpdate{Type_: vm.InteractiveMarkerUpdate_KEEP_ALIVE})
			s.mu.Unlock()
		}
	}
}

// Insert adds marker or replaces the marker with the same name. The change
// is published by the next ApplyChanges. Callbacks registered for a
// replaced marker are kept.
func (s *Server) Insert(marker vm.InteractiveMarker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update, ok := s.pending[marker.Name]
	if !ok || update.kind == eraseUpdate {
		update = &updateContext{callbacks: make(map[uint8]FeedbackFunc)}
		if ctx, ok := s.markers[marker.Name]; ok {
			for k, cb := range ctx.callbacks {
				update.callbacks[k] = cb
			}
		}
		s.pending[marker.Name] = update
	}
	update.kind = fullUpdate
	update.marker = marker
}

// SetPose moves the named marker. An empty header frame keeps the marker's
// current header. It returns false if no such marker exists.
func (s *Server) SetPose(name string, pose geometry_msgs.Pose, header std_msgs.Header) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, hasMarker := s.markers[name]
	update, hasUpdate := s.pending[name]
	if hasUpdate && update.kind == eraseUpdate {
		return false
	}
	if !hasMarker && !hasUpdate {
		return false
	}
	if header.FrameId == "" {
		if hasUpdate && update.kind == fullUpdate {
			header = update.marker.Header
		} else if hasMarker {
			header = ctx.marker.Header
		}
	}
	s.setPose(name, pose, header)
	return true
}

func (s *Server) setPose(name string, pose geometry_msgs.Pose, header std_msgs.Header) {
	update, ok := s.pending[name]
	if !ok {
		update = &updateContext{kind: poseUpdate}
		s.pending[name] = update
	}
	update.marker.Pose = pose
	update.marker.Header = header
}

// Erase removes the named marker on the next ApplyChanges. It returns
// false if no such marker exists.
func (s *Server) Erase(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, hasMarker := s.markers[name]
	_, hasUpdate := s.pending[name]
	if !hasMarker && !hasUpdate {
		return false
	}
	s.pending[name] = &updateContext{kind: eraseUpdate}
	return true
}

// Clear erases every marker on the next ApplyChanges.
func (s *Server) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = make(map[string]*updateContext)
	for name := range s.markers {
		s.pending[name] = &updateContext{kind: eraseUpdate}
	}
}

// Get returns the named marker including changes that have not been
// applied yet.
func (s *Server) Get(name string) (vm.InteractiveMarker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update, hasUpdate := s.pending[name]
	ctx, hasMarker := s.markers[name]
	if !hasUpdate {
		if !hasMarker {
			return vm.InteractiveMarker{}, false
		}
		return ctx.marker, true
	}
	switch update.kind {
	case fullUpdate:
		return update.marker, true
	case poseUpdate:
		if !hasMarker {
			return vm.InteractiveMarker{}, false
		}
		marker := ctx.marker
		marker.Pose = update.marker.Pose
		marker.Header = update.marker.Header
		return marker, true
	}
	return vm.InteractiveMarker{}, false
}

// SetCallback registers cb for feedback of the given event type on the
// named marker, or for every unhandled event type when eventType is
// DefaultFeedback. A nil cb removes the callback. It returns false if no
// such marker exists.
func (s *Server) SetCallback(name string, cb FeedbackFunc, eventType uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, hasMarker := s.markers[name]
	update, hasUpdate := s.pending[name]
	if !hasMarker && !hasUpdate {
		return false
	}
	if hasMarker {
		setCallback(ctx.callbacks, cb, eventType)
	}
	if hasUpdate && update.kind == fullUpdate {
		setCallback(update.callbacks, cb, eventType)
	}
	return true
}

func setCallback(callbacks map[uint8]FeedbackFunc, cb FeedbackFunc, eventType uint8) {
	if cb == nil {
		delete(callbacks, eventType)
		return
	}
	callbacks[eventType] = cb
}

// ApplyChanges publishes every pending change as one update and bumps the
// sequence number. It does nothing when nothing is pending.
func (s *Server) ApplyChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return
	}
	update := &vm.InteractiveMarkerUpdate{Type_: vm.InteractiveMarkerUpdate_UPDATE}
	for name, pending := range s.pending {
		switch pending.kind {
		case fullUpdate:
			ctx, ok := s.markers[name]
			if !ok {
				ctx = &markerContext{}
				s.markers[name] = ctx
			}
			ctx.marker = pending.marker
			ctx.callbacks = pending.callbacks
			update.Markers = append(update.Markers, pending.marker)
		case poseUpdate:
			ctx, ok := s.markers[name]
			if !ok {
				s.logger.Errorf("Pending pose update for non-existing marker %s found", name)
				continue
			}
			ctx.marker.Pose = pending.marker.Pose
			ctx.marker.Header = pending.marker.Header
			update.Poses = append(update.Poses, vm.InteractiveMarkerPose{
				Header: pending.marker.Header,
				Pose:   pending.marker.Pose,
				Name:   name,
			})
		case eraseUpdate:
			delete(s.markers, name)
			update.Erases = append(update.Erases, name)
		}
	}
	s.pending = make(map[string]*updateContext)

	s.seqNum++
	s.publish(update)
	s.publishInit()
}

// ProcessFeedback applies a client's feedback and runs the matching
// callback. A pose update becomes the marker's pending pose before the
// callback runs, so the next ApplyChanges relays it to other clients.
func (s *Server) ProcessFeedback(feedback *vm.InteractiveMarkerFeedback) {
	cb := s.handleFeedback(feedback)
	if cb != nil {
		cb(feedback)
	}
}

func (s *Server) handleFeedback(feedback *vm.InteractiveMarkerFeedback) FeedbackFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.markers[feedback.MarkerName]
	if !ok {
		return nil
	}
	now := s.clock.Now()
	if ctx.lastClientID != feedback.ClientId && now.Sub(ctx.lastFeedback) < clientSwitchInterval {
		s.logger.Debugf("Rejecting feedback for %s: conflicting feedback from separate clients", feedback.MarkerName)
		return nil
	}
	ctx.lastFeedback = now
	ctx.lastClientID = feedback.ClientId

	if feedback.EventType == vm.InteractiveMarkerFeedback_POSE_UPDATE {
		header := feedback.Header
		if ctx.marker.Header.Stamp.IsZero() {
			header = ctx.marker.Header
		}
		if update, ok := s.pending[feedback.MarkerName]; !ok || update.kind != eraseUpdate {
			s.setPose(feedback.MarkerName, feedback.Pose, header)
		}
	}

	if cb, ok := ctx.callbacks[feedback.EventType]; ok {
		return cb
	}
	return ctx.callbacks[DefaultFeedback]
}

// SeqNum returns the sequence number of the last published update.
func (s *Server) SeqNum() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqNum
}

// Shutdown erases all markers, publishes the change, and releases the
// server's topics.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.Clear()
		s.ApplyChanges()
		close(s.quit)
		<-s.done

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.feedbackSub != nil {
			s.feedbackSub.Shutdown()
		}
		s.updatePub.Shutdown()
		s.initPub.Shutdown()
	})
}

// publish must be called with s.mu held.
func (s *Server) publish(update *vm.InteractiveMarkerUpdate) {
	update.ServerId = s.serverID
	update.SeqNum = s.seqNum
	if err := s.updatePub.Publish(update); err != nil {
		s.logger.WithError(err).Warn("Failed to publish marker update")
	}
}

// publishInit must be called with s.mu held.
func (s *Server) publishInit() {
	full := &vm.InteractiveMarkerInit{ServerId: s.serverID, SeqNum: s.seqNum}
	for _, ctx := range s.markers {
		full.Markers = append(full.Markers, ctx.marker)
	}
	if err := s.initPub.Publish(full); err != nil {
		s.logger.WithError(err).Warn("Failed to publish full marker state")
	}
}
