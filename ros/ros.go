// Package ros is a ROS 1 client: node registration with the master, TCPROS
// publishers and subscribers, service clients, the parameter server, and
// the time types shared with generated messages.
package ros

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Node is a participant in the ROS graph. Queued subscriber callbacks are
// executed by SpinOnce and Spin on the goroutine that calls them.
type Node interface {
	NewPublisher(topic string, msgType MessageType) (Publisher, error)
	// NewLatchedPublisher creates a publisher that replays its last message
	// to every subscriber that connects after it was published.
	NewLatchedPublisher(topic string, msgType MessageType) (Publisher, error)
	// callback should be a function which takes 0, 1, or 2 arguments.
	// If it takes 0 arguments, it will simply be called without the
	// message. 1-argument functions are the normal case, and the
	// argument should be of the generated message type. If the
	// function takes 2 arguments, the second argument should be of
	// type MessageEvent.
	NewSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error)
	// NewConcurrentSubscriber is like NewSubscriber, but the callback runs
	// on the connection goroutine as soon as a message arrives instead of
	// waiting for SpinOnce. The callback must be safe for concurrent use.
	NewConcurrentSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error)
	NewServiceClient(service string, srvType ServiceType) ServiceClient
	// ServiceAvailable reports whether service is registered with the
	// master and accepts connections.
	ServiceAvailable(service string) bool

	OK() bool
	SpinOnce()
	Spin()
	Shutdown()

	GetParam(name string) (interface{}, error)
	SetParam(name string, value interface{}) error
	HasParam(name string) (bool, error)
	SearchParam(name string) (string, error)
	DeleteParam(name string) error

	// Name returns the fully qualified node name, e.g. /ns/node.
	Name() string
	Namespace() string
	Logger() *logrus.Entry

	NonRosArgs() []string
}

// NewNode registers a node called name with the master. args are scanned
// for remappings (from:=to), private parameters (_name:=value) and special
// keys (__name, __ns, __master, __hostname, __ip, __log).
func NewNode(name string, args []string, opts ...NodeOption) (Node, error) {
	return newDefaultNode(name, args, opts...)
}

// NodeOption customizes NewNode.
type NodeOption func(*defaultNode)

// WithLogger makes the node and everything it creates log through l.
func WithLogger(l *logrus.Logger) NodeOption {
	return func(n *defaultNode) {
		n.baseLogger = l
	}
}

// WithCallTimeout bounds each service call; zero disables the bound.
func WithCallTimeout(d time.Duration) NodeOption {
	return func(n *defaultNode) {
		n.callTimeout = d
	}
}

type Publisher interface {
	Publish(msg Message) error
	GetNumSubscribers() int
	Shutdown()
}

type Subscriber interface {
	GetNumPublishers() int
	Shutdown()
}

// MessageEvent is the optional second argument to a Subscriber callback.
type MessageEvent struct {
	PublisherName    string
	ReceiptTime      time.Time
	ConnectionHeader map[string]string
}

type ServiceClient interface {
	Call(srv Service) error
	Shutdown()
}
