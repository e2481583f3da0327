package ros

import (
	"bytes"
	"encoding/binary"
	"net"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rosgo/frametarget/xmlrpc"
)

type testStringType struct{}

func (testStringType) Text() string        { return "string data\n" }
func (testStringType) MD5Sum() string      { return "992ce8a1687cec8c8bd883ec73ca41d1" }
func (testStringType) Name() string        { return "std_msgs/String" }
func (testStringType) NewMessage() Message { return &testString{} }
func (*testString) Type() MessageType      { return testStringType{} }

func (m *testString) Serialize(buf *bytes.Buffer) error {
	WriteString(buf, m.Data)
	return nil
}
func (m *testString) Deserialize(r *bytes.Reader) (err error) {
	m.Data, err = ReadString(r)
	return err
}

type testString struct {
	Data string
}

type testInts struct {
	A, B int32
}

func (*testInts) Type() MessageType { return nil }
func (m *testInts) Serialize(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.LittleEndian, m)
}
func (m *testInts) Deserialize(r *bytes.Reader) error {
	return binary.Read(r, binary.LittleEndian, m)
}

type testSum struct {
	Sum int32
}

func (*testSum) Type() MessageType { return nil }
func (m *testSum) Serialize(buf *bytes.Buffer) error {
	return binary.Write(buf, binary.LittleEndian, m)
}
func (m *testSum) Deserialize(r *bytes.Reader) error {
	return binary.Read(r, binary.LittleEndian, m)
}

type addTwoIntsType struct{}

func (addTwoIntsType) MD5Sum() string            { return "6a2e34150c00229791cc89ff309fff21" }
func (addTwoIntsType) Name() string              { return "test/AddTwoInts" }
func (addTwoIntsType) RequestType() MessageType  { return nil }
func (addTwoIntsType) ResponseType() MessageType { return nil }
func (addTwoIntsType) NewService() Service       { return &addTwoInts{} }

type addTwoInts struct {
	Request  testInts
	Response testSum
}

func (s *addTwoInts) ReqMessage() Message { return &s.Request }
func (s *addTwoInts) ResMessage() Message { return &s.Response }

func apiSuccess(value interface{}) (interface{}, error) {
	return []interface{}{int32(APIStatusSuccess), "ok", value}, nil
}

// fakeMaster implements the parts of the master API used by nodes.
type fakeMaster struct {
	mu          sync.Mutex
	params      map[string]interface{}
	publishers  map[string][]string
	subscribers map[string][]string
	services    map[string]string
	server      *httptest.Server
}

func newFakeMaster(t *testing.T) *fakeMaster {
	m := &fakeMaster{
		params:      make(map[string]interface{}),
		publishers:  make(map[string][]string),
		subscribers: make(map[string][]string),
		services:    make(map[string]string),
	}
	m.server = httptest.NewServer(xmlrpc.NewHandler(map[string]xmlrpc.Method{
		"registerPublisher":    m.registerPublisher,
		"unregisterPublisher":  m.unregisterPublisher,
		"registerSubscriber":   m.registerSubscriber,
		"unregisterSubscriber": m.unregisterSubscriber,
		"lookupService":        m.lookupService,
		"setParam":             m.setParam,
		"getParam":             m.getParam,
		"hasParam":             m.hasParam,
		"deleteParam":          m.deleteParam,
	}))
	t.Cleanup(m.server.Close)
	return m
}

func (m *fakeMaster) registerPublisher(callerID, topic, topicType, callerAPI string) (interface{}, error) {
	m.mu.Lock()
	m.publishers[topic] = append(m.publishers[topic], callerAPI)
	pubs := append([]string(nil), m.publishers[topic]...)
	subs := append([]string(nil), m.subscribers[topic]...)
	m.mu.Unlock()
	for _, sub := range subs {
		go xmlrpc.Call(sub, "publisherUpdate", "/master", topic, pubs)
	}
	return apiSuccess(subs)
}

func (m *fakeMaster) unregisterPublisher(callerID, topic, callerAPI string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishers[topic] = setDifference(m.publishers[topic], []string{callerAPI})
	return apiSuccess(int32(1))
}

func (m *fakeMaster) registerSubscriber(callerID, topic, topicType, callerAPI string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[topic] = append(m.subscribers[topic], callerAPI)
	return apiSuccess(append([]string{}, m.publishers[topic]...))
}

func (m *fakeMaster) unregisterSubscriber(callerID, topic, callerAPI string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[topic] = setDifference(m.subscribers[topic], []string{callerAPI})
	return apiSuccess(int32(1))
}

func (m *fakeMaster) lookupService(callerID, service string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uri, found := m.services[service]
	if !found {
		return []interface{}{int32(APIStatusError), "no provider", ""}, nil
	}
	return apiSuccess(uri)
}

func (m *fakeMaster) setParam(callerID, key string, value interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params[key] = value
	return apiSuccess(int32(0))
}

func (m *fakeMaster) getParam(callerID, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.params[key]
	if !found {
		return []interface{}{int32(APIStatusError), "Parameter [" + key + "] is not set", int32(0)}, nil
	}
	return apiSuccess(value)
}

func (m *fakeMaster) hasParam(callerID, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.params[key]
	return apiSuccess(found)
}

func (m *fakeMaster) deleteParam(callerID, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.params, key)
	return apiSuccess(int32(0))
}

func (m *fakeMaster) publisherCount(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.publishers[topic])
}

func newTestNode(t *testing.T, m *fakeMaster, name string, args ...string) Node {
	t.Helper()
	args = append(args, "__master:="+m.server.URL, "__ip:=127.0.0.1")
	node, err := NewNode(name, args)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(node.Shutdown)
	return node
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestProcessArguments(t *testing.T) {
	mapping, params, specials, rest := processArguments([]string{
		"chatter:=/talk", "_rate:=30", "__ns:=/robot", "--verbose", "a:=b:=c",
	})
	if diff := cmp.Diff(NameMap{"chatter": "/talk"}, mapping); diff != "" {
		t.Errorf("mapping (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NameMap{"rate": "30"}, params); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NameMap{"__ns": "/robot"}, specials); diff != "" {
		t.Errorf("specials (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"--verbose", "a:=b:=c"}, rest); diff != "" {
		t.Errorf("rest (-want +got):\n%s", diff)
	}
}

func TestNewNodeSetsPrivateParams(t *testing.T) {
	m := newFakeMaster(t)
	node := newTestNode(t, m, "/test_node", "_rate:=30", "_frame:=arm_link", "extra")

	if node.Name() != "/test_node" || node.Namespace() != "/" {
		t.Errorf("name %q namespace %q", node.Name(), node.Namespace())
	}
	if diff := cmp.Diff([]string{"extra"}, node.NonRosArgs()); diff != "" {
		t.Errorf("non-ROS args (-want +got):\n%s", diff)
	}
	rate, err := node.GetParam("~rate")
	if err != nil {
		t.Fatal(err)
	}
	if rate != int32(30) {
		t.Errorf("~rate = %#v", rate)
	}
	frame, err := node.GetParam("/test_node/frame")
	if err != nil {
		t.Fatal(err)
	}
	if frame != "arm_link" {
		t.Errorf("~frame = %#v", frame)
	}
}

func TestParamAPI(t *testing.T) {
	m := newFakeMaster(t)
	node := newTestNode(t, m, "/param_node")

	if has, err := node.HasParam("~missing"); err != nil || has {
		t.Errorf("HasParam(~missing) = %v, %v", has, err)
	}
	if _, err := node.GetParam("~missing"); err == nil {
		t.Error("GetParam(~missing) succeeded")
	} else if _, ok := err.(*APIError); !ok {
		t.Errorf("expected *APIError, got %T", err)
	}
	if err := node.SetParam("~value", 2.5); err != nil {
		t.Fatal(err)
	}
	if has, err := node.HasParam("/param_node/value"); err != nil || !has {
		t.Errorf("HasParam = %v, %v", has, err)
	}
	if err := node.DeleteParam("~value"); err != nil {
		t.Fatal(err)
	}
	if has, _ := node.HasParam("~value"); has {
		t.Error("parameter survived DeleteParam")
	}
}

func TestNewNodeRequiresMaster(t *testing.T) {
	t.Setenv("ROS_MASTER_URI", "")
	if _, err := NewNode("/orphan", nil); err == nil {
		t.Error("expected an error without a master URI")
	}
}

func TestPublishSubscribe(t *testing.T) {
	m := newFakeMaster(t)
	talker := newTestNode(t, m, "/talker")
	listener := newTestNode(t, m, "/listener")

	pub, err := talker.NewPublisher("chatter", testStringType{})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	var events []MessageEvent
	_, err = listener.NewSubscriber("/chatter", testStringType{}, func(msg *testString, event MessageEvent) {
		got = append(got, msg.Data)
		events = append(events, event)
	})
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, "subscriber connection", func() bool { return pub.GetNumSubscribers() == 1 })

	if err := pub.Publish(&testString{Data: "hello"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "message delivery", func() bool {
		listener.SpinOnce()
		return len(got) == 1
	})
	if got[0] != "hello" {
		t.Errorf("received %q", got[0])
	}
	if events[0].PublisherName != "/talker" {
		t.Errorf("publisher name %q", events[0].PublisherName)
	}

	pub.Shutdown()
	if n := m.publisherCount("/chatter"); n != 0 {
		t.Errorf("%d publishers still registered after shutdown", n)
	}
}

func TestQueuedCallbacksWaitForSpin(t *testing.T) {
	m := newFakeMaster(t)
	talker := newTestNode(t, m, "/talker")
	listener := newTestNode(t, m, "/listener")

	pub, err := talker.NewPublisher("/chatter", testStringType{})
	if err != nil {
		t.Fatal(err)
	}
	var calls int
	if _, err := listener.NewSubscriber("/chatter", testStringType{}, func() { calls++ }); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "subscriber connection", func() bool { return pub.GetNumSubscribers() == 1 })
	if err := pub.Publish(&testString{Data: "x"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if calls != 0 {
		t.Fatal("callback ran before SpinOnce")
	}
	waitFor(t, "callback", func() bool {
		listener.SpinOnce()
		return calls == 1
	})
}

func TestLatchedPublisherReplaysLastMessage(t *testing.T) {
	m := newFakeMaster(t)
	talker := newTestNode(t, m, "/talker")
	listener := newTestNode(t, m, "/listener")

	pub, err := talker.NewLatchedPublisher("/latched", testStringType{})
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range []string{"first", "last"} {
		if err := pub.Publish(&testString{Data: data}); err != nil {
			t.Fatal(err)
		}
	}

	received := make(chan string, 1)
	_, err = listener.NewConcurrentSubscriber("/latched", testStringType{}, func(msg *testString) {
		received <- msg.Data
	})
	if err != nil {
		t.Fatal(err)
	}
	select {
	case data := <-received:
		if data != "last" {
			t.Errorf("latched message %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no latched message")
	}
}

func TestSubscriberFollowsPublisherUpdate(t *testing.T) {
	m := newFakeMaster(t)
	talker := newTestNode(t, m, "/talker")
	listener := newTestNode(t, m, "/listener")

	received := make(chan string, 1)
	sub, err := listener.NewConcurrentSubscriber("/late", testStringType{}, func(msg *testString) {
		received <- msg.Data
	})
	if err != nil {
		t.Fatal(err)
	}
	if sub.GetNumPublishers() != 0 {
		t.Fatal("unexpected publisher")
	}
	pub, err := talker.NewPublisher("/late", testStringType{})
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, "publisher connection", func() bool { return sub.GetNumPublishers() == 1 })
	waitFor(t, "subscriber connection", func() bool { return pub.GetNumSubscribers() == 1 })
	if err := pub.Publish(&testString{Data: "update"}); err != nil {
		t.Fatal(err)
	}
	select {
	case data := <-received:
		if data != "update" {
			t.Errorf("received %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message")
	}
}

func TestNewSubscriberRejectsBadCallback(t *testing.T) {
	m := newFakeMaster(t)
	node := newTestNode(t, m, "/listener")
	if _, err := node.NewSubscriber("/chatter", testStringType{}, "not a function"); err == nil {
		t.Error("expected an error for a non-function callback")
	}
	if _, err := node.NewSubscriber("/chatter", testStringType{}, func(a, b, c int) {}); err == nil {
		t.Error("expected an error for a 3-argument callback")
	}
}

// serveAddTwoInts accepts TCPROS service connections until l is closed.
func serveAddTwoInts(t *testing.T, l net.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		go func(conn net.Conn) {
			defer conn.Close()
			headers, err := readConnectionHeader(conn)
			if err != nil {
				t.Error(err)
				return
			}
			fields := headerMap(headers)
			res := []header{{"callerid", "/adder"}, {"md5sum", addTwoIntsType{}.MD5Sum()}, {"type", addTwoIntsType{}.Name()}}
			if err := writeConnectionHeader(res, conn); err != nil || fields["probe"] == "1" {
				return
			}
			payload, err := readFrame(conn)
			if err != nil {
				t.Error(err)
				return
			}
			var req testInts
			if err := req.Deserialize(bytes.NewReader(payload)); err != nil {
				t.Error(err)
				return
			}
			var buf bytes.Buffer
			_ = (&testSum{Sum: req.A + req.B}).Serialize(&buf)
			conn.Write([]byte{1})
			writeFrame(conn, buf.Bytes())
		}(conn)
	}
}

func TestServiceClient(t *testing.T) {
	m := newFakeMaster(t)
	node := newTestNode(t, m, "/caller")

	if node.ServiceAvailable("/add_two_ints") {
		t.Error("unregistered service reported available")
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	go serveAddTwoInts(t, l)
	m.mu.Lock()
	m.services["/add_two_ints"] = "rosrpc://" + l.Addr().String()
	m.mu.Unlock()

	if !node.ServiceAvailable("add_two_ints") {
		t.Fatal("registered service reported unavailable")
	}

	client := node.NewServiceClient("/add_two_ints", addTwoIntsType{})
	srv := &addTwoInts{Request: testInts{A: 40, B: 2}}
	if err := client.Call(srv); err != nil {
		t.Fatal(err)
	}
	if srv.Response.Sum != 42 {
		t.Errorf("sum = %d", srv.Response.Sum)
	}
}
