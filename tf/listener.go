package tf

import (
	"github.com/sirupsen/logrus"

	"github.com/rosgo/frametarget/msgs/tf2_msgs"
	"github.com/rosgo/frametarget/ros"
)

const (
	TopicTF       = "/tf"
	TopicTFStatic = "/tf_static"
)

// Listener fills a Buffer from the /tf and /tf_static topics. Messages are
// applied on the subscriber goroutines, so lookups see new data while the
// node's own goroutine is blocked.
type Listener struct {
	buffer *Buffer
	subs   []ros.Subscriber
	logger *logrus.Entry
}

// NewListener subscribes node to the transform topics and feeds buffer.
func NewListener(node ros.Node, buffer *Buffer) (*Listener, error) {
	l := &Listener{
		buffer: buffer,
		logger: node.Logger().WithField(ros.ModuleField, "tf"),
	}
	for _, topic := range []struct {
		name   string
		static bool
	}{
		{TopicTF, false},
		{TopicTFStatic, true},
	} {
		sub, err := node.NewConcurrentSubscriber(topic.name, tf2_msgs.MsgTFMessage, l.handler(topic.static))
		if err != nil {
			l.Shutdown()
			return nil, err
		}
		l.subs = append(l.subs, sub)
	}
	return l, nil
}

func (l *Listener) handler(static bool) func(*tf2_msgs.TFMessage, ros.MessageEvent) {
	return func(msg *tf2_msgs.TFMessage, event ros.MessageEvent) {
		l.apply(msg, event.PublisherName, static)
	}
}

func (l *Listener) apply(msg *tf2_msgs.TFMessage, authority string, static bool) {
	for i := range msg.Transforms {
		if err := l.buffer.SetTransform(msg.Transforms[i], authority, static); err != nil {
			l.logger.WithError(err).Warn("Ignoring transform")
		}
	}
}

// Buffer returns the buffer the listener writes to.
func (l *Listener) Buffer() *Buffer {
	return l.buffer
}

// Shutdown unsubscribes from the transform topics.
func (l *Listener) Shutdown() {
	for _, sub := range l.subs {
		sub.Shutdown()
	}
	l.subs = nil
}
