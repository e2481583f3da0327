package ros

import (
	"bytes"
	"context"
	"net"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	dialTimeout        = 3 * time.Second
	subscriberChanSize = 10
)

type messageEvent struct {
	bytes []byte
	event MessageEvent
}

type disconnection struct {
	pubURI   string
	quitChan chan struct{}
}

// The subscription state is owned by the start goroutine; other goroutines
// talk to it through channels.
type defaultSubscriber struct {
	node       *defaultNode
	topic      string
	msgType    MessageType
	concurrent bool
	logger     *logrus.Entry

	pubListChan      chan []string
	msgChan          chan messageEvent
	addCallbackChan  chan interface{}
	disconnectedChan chan disconnection
	shutdownChan     chan struct{}
	shutdownOnce     sync.Once
	done             chan struct{}
	ctx              context.Context
	cancel           context.CancelFunc

	numPublishers int32
}

func newDefaultSubscriber(node *defaultNode, topic string, msgType MessageType, callback interface{}, concurrent bool) *defaultSubscriber {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &defaultSubscriber{
		node:             node,
		topic:            topic,
		msgType:          msgType,
		concurrent:       concurrent,
		logger:           node.logger.WithField("topic", topic),
		pubListChan:      make(chan []string, subscriberChanSize),
		msgChan:          make(chan messageEvent, subscriberChanSize),
		addCallbackChan:  make(chan interface{}, subscriberChanSize),
		disconnectedChan: make(chan disconnection, subscriberChanSize),
		shutdownChan:     make(chan struct{}),
		done:             make(chan struct{}),
		ctx:              ctx,
		cancel:           cancel,
	}
	node.waitGroup.Add(1)
	go sub.start(&node.waitGroup, []interface{}{callback})
	return sub
}

func checkCallback(callback interface{}) error {
	fn := reflect.ValueOf(callback)
	if fn.Kind() != reflect.Func {
		return errors.Errorf("callback must be a function, got %T", callback)
	}
	if fn.Type().NumIn() > 2 {
		return errors.Errorf("callback takes %d arguments, at most 2 are allowed", fn.Type().NumIn())
	}
	return nil
}

func (sub *defaultSubscriber) updatePublishers(pubURIs []string) {
	select {
	case sub.pubListChan <- pubURIs:
	case <-sub.done:
	}
}

func (sub *defaultSubscriber) addCallback(callback interface{}) {
	select {
	case sub.addCallbackChan <- callback:
	case <-sub.done:
	}
}

func (sub *defaultSubscriber) start(wg *sync.WaitGroup, callbacks []interface{}) {
	logger := sub.logger
	logger.Debug("Subscriber goroutine started")
	defer func() {
		close(sub.done)
		logger.Debug("Subscriber goroutine exit")
		wg.Done()
	}()

	var pubList []string
	connections := make(map[string]chan struct{})
	for {
		select {
		case list := <-sub.pubListChan:
			deadPubs := setDifference(pubList, list)
			newPubs := setDifference(list, pubList)
			pubList = list

			for _, pub := range deadPubs {
				if quitChan, ok := connections[pub]; ok {
					close(quitChan)
					delete(connections, pub)
				}
			}
			for _, pub := range newPubs {
				quitChan := make(chan struct{})
				connections[pub] = quitChan
				go sub.connectPublisher(pub, quitChan)
			}
		case callback := <-sub.addCallbackChan:
			callbacks = append(callbacks, callback)
		case msgEvent := <-sub.msgChan:
			job := sub.bindCallbacks(msgEvent, append([]interface{}(nil), callbacks...))
			if sub.concurrent {
				job()
			} else if !sub.node.enqueue(sub.ctx, job) {
				logger.Debug("Dropped message, node is shutting down")
			}
		case d := <-sub.disconnectedChan:
			// Forget the publisher so a later publisherUpdate reconnects.
			if connections[d.pubURI] == d.quitChan {
				delete(connections, d.pubURI)
				pubList = setDifference(pubList, []string{d.pubURI})
			}
		case <-sub.shutdownChan:
			for _, quitChan := range connections {
				close(quitChan)
			}
			if _, err := callRosAPI(sub.node.masterURI, "unregisterSubscriber",
				sub.node.qualifiedName, sub.topic, sub.node.xmlrpcURI); err != nil {
				logger.WithError(err).Warn("unregisterSubscriber failed")
			}
			return
		}
	}
}

func (sub *defaultSubscriber) bindCallbacks(msgEvent messageEvent, callbacks []interface{}) func() {
	return func() {
		m := sub.msgType.NewMessage()
		if err := m.Deserialize(bytes.NewReader(msgEvent.bytes)); err != nil {
			sub.logger.WithError(err).Errorf("Failed to deserialize %s", sub.msgType.Name())
			return
		}
		args := []reflect.Value{reflect.ValueOf(m), reflect.ValueOf(msgEvent.event)}
		for _, callback := range callbacks {
			fun := reflect.ValueOf(callback)
			fun.Call(args[:fun.Type().NumIn()])
		}
	}
}

func (sub *defaultSubscriber) connectPublisher(pubURI string, quitChan chan struct{}) {
	logger := sub.logger.WithField("publisher", pubURI)
	defer func() {
		select {
		case sub.disconnectedChan <- disconnection{pubURI, quitChan}:
		case <-sub.done:
		}
	}()

	conn, resHeaders, err := sub.dialPublisher(pubURI)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to publisher")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-quitChan:
			conn.Close()
		case <-closed:
		}
	}()

	atomic.AddInt32(&sub.numPublishers, 1)
	defer atomic.AddInt32(&sub.numPublishers, -1)

	event := MessageEvent{
		PublisherName:    resHeaders["callerid"],
		ConnectionHeader: resHeaders,
	}
	for {
		payload, err := readFrame(conn)
		if err != nil {
			select {
			case <-quitChan:
			default:
				logger.WithError(err).Debug("Connection to publisher lost")
			}
			return
		}
		event.ReceiptTime = time.Now()
		select {
		case sub.msgChan <- messageEvent{bytes: payload, event: event}:
		case <-quitChan:
			return
		}
	}
}

// dialPublisher negotiates a TCPROS connection with the publisher whose
// slave API is at pubURI and returns it with the publisher's header.
func (sub *defaultSubscriber) dialPublisher(pubURI string) (net.Conn, map[string]string, error) {
	protocols := []interface{}{[]interface{}{"TCPROS"}}
	result, err := callRosAPI(pubURI, "requestTopic", sub.node.qualifiedName, sub.topic, protocols)
	if err != nil {
		return nil, nil, err
	}
	params, ok := result.([]interface{})
	if !ok || len(params) < 3 {
		return nil, nil, errors.Errorf("malformed requestTopic result %v", result)
	}
	if name, _ := params[0].(string); name != "TCPROS" {
		return nil, nil, errors.Errorf("unsupported protocol %v", params[0])
	}
	host, _ := params[1].(string)
	port, ok := params[2].(int32)
	if !ok {
		return nil, nil, errors.Errorf("malformed port %v", params[2])
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))), dialTimeout)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dial publisher")
	}

	// 1. Write connection header
	headers := []header{
		{"topic", sub.topic},
		{"md5sum", sub.msgType.MD5Sum()},
		{"type", sub.msgType.Name()},
		{"callerid", sub.node.qualifiedName},
	}
	conn.SetDeadline(time.Now().Add(handshakeTimeout))
	if err := writeConnectionHeader(headers, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	// 2. Read response header
	resHeaders, err := readConnectionHeader(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	conn.SetDeadline(time.Time{})
	fields := headerMap(resHeaders)
	if msg, ok := fields["error"]; ok {
		conn.Close()
		return nil, nil, errors.Errorf("publisher refused connection: %s", msg)
	}
	if fields["type"] != sub.msgType.Name() || fields["md5sum"] != sub.msgType.MD5Sum() {
		conn.Close()
		return nil, nil, errors.Errorf("incompatible message type %s/%s, expected %s/%s",
			fields["type"], fields["md5sum"], sub.msgType.Name(), sub.msgType.MD5Sum())
	}
	return conn, fields, nil
}

func (sub *defaultSubscriber) GetNumPublishers() int {
	return int(atomic.LoadInt32(&sub.numPublishers))
}

func (sub *defaultSubscriber) Shutdown() {
	sub.shutdownOnce.Do(func() {
		sub.cancel()
		close(sub.shutdownChan)
		sub.node.removeSubscriber(sub.topic)
	})
	<-sub.done
}
