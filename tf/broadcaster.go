package tf

import (
	"github.com/pkg/errors"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/tf2_msgs"
	"github.com/rosgo/frametarget/ros"
)

// Broadcaster publishes transforms on /tf.
type Broadcaster struct {
	pub ros.Publisher
}

// NewBroadcaster advertises /tf on node.
func NewBroadcaster(node ros.Node) (*Broadcaster, error) {
	pub, err := node.NewPublisher(TopicTF, tf2_msgs.MsgTFMessage)
	if err != nil {
		return nil, errors.Wrap(err, "advertise "+TopicTF)
	}
	return NewBroadcasterWithPublisher(pub), nil
}

// NewBroadcasterWithPublisher sends transforms through an existing
// publisher of tf2_msgs/TFMessage.
func NewBroadcasterWithPublisher(pub ros.Publisher) *Broadcaster {
	return &Broadcaster{pub: pub}
}

// SendTransform publishes transforms as a single message.
func (b *Broadcaster) SendTransform(transforms ...geometry_msgs.TransformStamped) error {
	return b.pub.Publish(&tf2_msgs.TFMessage{Transforms: transforms})
}

func (b *Broadcaster) Shutdown() {
	b.pub.Shutdown()
}
