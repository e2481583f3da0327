package ros

import (
	"bytes"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	sessionQueueSize  = 100
	writeTimeout      = time.Second
	handshakeTimeout  = 5 * time.Second
	publisherChanSize = 10
)

type remoteSubscriberSessionError struct {
	session *remoteSubscriberSession
	err     error
}

func (e *remoteSubscriberSessionError) Error() string {
	return errors.Wrapf(e.err, "subscriber session %s", e.session.conn.RemoteAddr()).Error()
}

type defaultPublisher struct {
	node    *defaultNode
	topic   string
	msgType MessageType
	latch   bool
	logger  *logrus.Entry

	listener          net.Listener
	msgChan           chan []byte
	sessionChan       chan *remoteSubscriberSession
	sessionErrorChan  chan *remoteSubscriberSessionError
	listenerErrorChan chan error
	shutdownChan      chan struct{}
	shutdownOnce      sync.Once
	done              chan struct{}

	numSubscribers int32
}

func newDefaultPublisher(node *defaultNode, topic string, msgType MessageType, latch bool) (*defaultPublisher, error) {
	listener, err := listenTCP(node.listenIP)
	if err != nil {
		return nil, err
	}
	pub := &defaultPublisher{
		node:              node,
		topic:             topic,
		msgType:           msgType,
		latch:             latch,
		logger:            node.logger.WithField("topic", topic),
		listener:          listener,
		msgChan:           make(chan []byte, publisherChanSize),
		sessionChan:       make(chan *remoteSubscriberSession, publisherChanSize),
		sessionErrorChan:  make(chan *remoteSubscriberSessionError, publisherChanSize),
		listenerErrorChan: make(chan error, 1),
		shutdownChan:      make(chan struct{}),
		done:              make(chan struct{}),
	}
	return pub, nil
}

// close releases the listener of a publisher that was never started.
func (pub *defaultPublisher) close() {
	pub.listener.Close()
}

func (pub *defaultPublisher) start(wg *sync.WaitGroup) {
	logger := pub.logger
	logger.Debug("Publisher goroutine started")
	defer func() {
		close(pub.done)
		logger.Debug("Publisher goroutine exit")
		wg.Done()
	}()

	go pub.listenRemoteSubscriber()

	var lastMsg []byte
	sessions := make(map[*remoteSubscriberSession]struct{})
	for {
		select {
		case msg := <-pub.msgChan:
			if pub.latch {
				lastMsg = msg
			}
			for s := range sessions {
				s.enqueue(msg)
			}
		case s := <-pub.sessionChan:
			sessions[s] = struct{}{}
			if lastMsg != nil {
				s.enqueue(lastMsg)
			}
			go s.start()
		case err := <-pub.sessionErrorChan:
			logger.WithError(err.err).Debug("Subscriber session closed")
			delete(sessions, err.session)
		case err := <-pub.listenerErrorChan:
			logger.WithError(err).Error("Listener closed unexpectedly")
			for s := range sessions {
				close(s.quitChan)
			}
			return
		case <-pub.shutdownChan:
			pub.listener.Close()
			if _, err := callRosAPI(pub.node.masterURI, "unregisterPublisher",
				pub.node.qualifiedName, pub.topic, pub.node.xmlrpcURI); err != nil {
				logger.WithError(err).Warn("unregisterPublisher failed")
			}
			for s := range sessions {
				close(s.quitChan)
			}
			return
		}
	}
}

func (pub *defaultPublisher) listenRemoteSubscriber() {
	logger := pub.logger
	logger.Debugf("Start listen %s.", pub.listener.Addr().String())
	for {
		conn, err := pub.listener.Accept()
		if err != nil {
			select {
			case <-pub.shutdownChan:
			default:
				pub.listenerErrorChan <- err
			}
			return
		}
		logger.Debugf("Connected %s", conn.RemoteAddr().String())
		select {
		case pub.sessionChan <- newRemoteSubscriberSession(pub, conn):
		case <-pub.done:
			conn.Close()
			return
		}
	}
}

func (pub *defaultPublisher) Publish(msg Message) error {
	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		return errors.Wrapf(err, "serialize %s", pub.msgType.Name())
	}
	select {
	case pub.msgChan <- buf.Bytes():
		return nil
	case <-pub.done:
		return errors.Errorf("publisher for %s is shut down", pub.topic)
	}
}

func (pub *defaultPublisher) GetNumSubscribers() int {
	return int(atomic.LoadInt32(&pub.numSubscribers))
}

func (pub *defaultPublisher) Shutdown() {
	pub.shutdownOnce.Do(func() {
		close(pub.shutdownChan)
		pub.node.removePublisher(pub.topic)
	})
	<-pub.done
}

func (pub *defaultPublisher) hostAndPort() (string, string) {
	return pub.node.hostname, listenerPort(pub.listener)
}

type remoteSubscriberSession struct {
	pub      *defaultPublisher
	conn     net.Conn
	quitChan chan struct{}
	queue    chan []byte
}

func newRemoteSubscriberSession(pub *defaultPublisher, conn net.Conn) *remoteSubscriberSession {
	return &remoteSubscriberSession{
		pub:      pub,
		conn:     conn,
		quitChan: make(chan struct{}),
		queue:    make(chan []byte, sessionQueueSize),
	}
}

// enqueue never blocks; when the queue is full the oldest message is dropped.
func (session *remoteSubscriberSession) enqueue(msg []byte) {
	for {
		select {
		case session.queue <- msg:
			return
		default:
			select {
			case <-session.queue:
			default:
			}
		}
	}
}

func (session *remoteSubscriberSession) start() {
	err := session.serve()
	session.conn.Close()
	select {
	case session.pub.sessionErrorChan <- &remoteSubscriberSessionError{session, err}:
	case <-session.pub.done:
	}
}

func (session *remoteSubscriberSession) serve() error {
	pub := session.pub
	logger := pub.logger

	// 1. Read connection header
	session.conn.SetDeadline(time.Now().Add(handshakeTimeout))
	headers, err := readConnectionHeader(session.conn)
	if err != nil {
		return err
	}
	fields := headerMap(headers)
	logger.Debugf("TCPROS connection header from %s: %v", fields["callerid"], fields)

	if t := fields["type"]; t != pub.msgType.Name() && t != "*" {
		err := errors.Errorf("incompatible message type %s, publishing %s", t, pub.msgType.Name())
		_ = writeConnectionHeader([]header{{"error", err.Error()}}, session.conn)
		return err
	}
	if md5 := fields["md5sum"]; md5 != pub.msgType.MD5Sum() && md5 != "*" {
		err := errors.Errorf("incompatible md5sum %s, publishing %s", md5, pub.msgType.MD5Sum())
		_ = writeConnectionHeader([]header{{"error", err.Error()}}, session.conn)
		return err
	}

	// 2. Return response header
	latching := "0"
	if pub.latch {
		latching = "1"
	}
	resHeaders := []header{
		{"message_definition", pub.msgType.Text()},
		{"callerid", pub.node.qualifiedName},
		{"latching", latching},
		{"md5sum", pub.msgType.MD5Sum()},
		{"topic", pub.topic},
		{"type", pub.msgType.Name()},
	}
	if err := writeConnectionHeader(resHeaders, session.conn); err != nil {
		return err
	}
	session.conn.SetDeadline(time.Time{})

	atomic.AddInt32(&pub.numSubscribers, 1)
	defer atomic.AddInt32(&pub.numSubscribers, -1)

	// 3. Start sending messages
	for {
		select {
		case <-session.quitChan:
			return nil
		case msg := <-session.queue:
			session.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := writeFrame(session.conn, msg); err != nil {
				return err
			}
		}
	}
}
