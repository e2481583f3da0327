package tf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/tf2_msgs"
	"github.com/rosgo/frametarget/ros"
)

type recordingPublisher struct {
	msgs     []ros.Message
	shutdown bool
}

func (p *recordingPublisher) Publish(msg ros.Message) error {
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) GetNumSubscribers() int { return 1 }
func (p *recordingPublisher) Shutdown()              { p.shutdown = true }

func TestBroadcasterFeedsListener(t *testing.T) {
	pub := &recordingPublisher{}
	br := NewBroadcasterWithPublisher(pub)
	sent := []geometry_msgs.TransformStamped{
		stamped("base_link", "arm", 3, 1, 0, 0, noRotation),
		stamped("arm", "target", 3, 0, 0, 1, noRotation),
	}
	if err := br.SendTransform(sent...); err != nil {
		t.Fatalf("SendTransform: %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.msgs))
	}
	msg, ok := pub.msgs[0].(*tf2_msgs.TFMessage)
	if !ok {
		t.Fatalf("published %T, want *tf2_msgs.TFMessage", pub.msgs[0])
	}
	if diff := cmp.Diff(sent, msg.Transforms); diff != "" {
		t.Errorf("transforms mismatch (-want +got):\n%s", diff)
	}

	l := &Listener{buffer: NewBuffer(0), logger: ros.ModuleLogger(nil, "tf")}
	l.handler(false)(msg, ros.MessageEvent{PublisherName: "/broadcaster"})
	got, err := l.Buffer().LookupTransform("base_link", "target", ros.Time{})
	if err != nil {
		t.Fatalf("LookupTransform: %v", err)
	}
	want := geometry_msgs.Vector3{X: 1, Z: 1}
	if diff := cmp.Diff(want, got.Transform.Translation, approx); diff != "" {
		t.Errorf("translation mismatch (-want +got):\n%s", diff)
	}

	br.Shutdown()
	if !pub.shutdown {
		t.Error("Shutdown did not reach the publisher")
	}
}

func TestListenerSkipsInvalidTransforms(t *testing.T) {
	l := &Listener{buffer: NewBuffer(0), logger: ros.ModuleLogger(nil, "tf")}
	l.handler(true)(&tf2_msgs.TFMessage{Transforms: []geometry_msgs.TransformStamped{
		stamped("base_link", "base_link", 0, 0, 0, 0, noRotation),
		stamped("base_link", "laser", 0, 0.2, 0, 0, noRotation),
	}}, ros.MessageEvent{PublisherName: "/static_publisher"})

	if !l.Buffer().CanTransform("laser", "base_link", ros.NewTime(50, 0)) {
		t.Error("valid static transform was not stored")
	}
}
