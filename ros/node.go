package ros

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rosgo/frametarget/xmlrpc"
)

const (
	jobQueueSize       = 100
	spinPollInterval   = 100 * time.Millisecond
	defaultCallTimeout = 5 * time.Second
)

func processArguments(args []string) (NameMap, NameMap, NameMap, []string) {
	mapping := make(NameMap)
	params := make(NameMap)
	specials := make(NameMap)
	rest := make([]string, 0)
	for _, arg := range args {
		components := strings.Split(arg, Remap)
		if len(components) != 2 {
			rest = append(rest, arg)
			continue
		}
		key, value := components[0], components[1]
		switch {
		case strings.HasPrefix(key, "__"):
			specials[key] = value
		case strings.HasPrefix(key, "_"):
			params[key[1:]] = value
		default:
			mapping[key] = value
		}
	}
	return mapping, params, specials, rest
}

// *defaultNode implements Node interface.
type defaultNode struct {
	name          string
	namespace     string
	qualifiedName string
	masterURI     string
	xmlrpcURI     string
	hostname      string
	listenIP      string
	nameResolver  *NameResolver
	nonRosArgs    []string
	callTimeout   time.Duration

	xmlrpcListener net.Listener
	xmlrpcHandler  *xmlrpc.Handler
	httpServer     *http.Server

	mu          sync.Mutex
	subscribers map[string]*defaultSubscriber
	publishers  map[string]*defaultPublisher

	jobChan       chan func()
	done          chan struct{}
	shutdownOnce  sync.Once
	interruptChan chan os.Signal
	waitGroup     sync.WaitGroup

	baseLogger *logrus.Logger
	logger     *logrus.Entry
}

func newDefaultNode(name string, args []string, opts ...NodeOption) (*defaultNode, error) {
	node := &defaultNode{callTimeout: defaultCallTimeout}
	for _, opt := range opts {
		opt(node)
	}
	node.logger = ModuleLogger(node.baseLogger, "ros")

	namespace, nodeName, err := qualifyNodeName(name)
	if err != nil {
		return nil, err
	}

	remapping, params, specials, rest := processArguments(args)

	node.name = nodeName
	if value, ok := specials["__name"]; ok {
		node.name = value
	}

	node.namespace = namespace
	if ns := os.Getenv("ROS_NAMESPACE"); len(ns) > 0 {
		node.namespace = ns
	}
	if value, ok := specials["__ns"]; ok {
		node.namespace = value
	}
	if !strings.HasPrefix(node.namespace, GlobalNS) {
		node.namespace = GlobalNS + node.namespace
	}

	var onlyLocalhost bool
	node.hostname, onlyLocalhost = determineHost()
	if value, ok := specials["__hostname"]; ok {
		node.hostname = value
		onlyLocalhost = value == "localhost"
	} else if value, ok := specials["__ip"]; ok {
		node.hostname = value
		onlyLocalhost = isLoopbackAddress(value)
	}
	if onlyLocalhost {
		node.listenIP = "127.0.0.1"
	} else {
		node.listenIP = "0.0.0.0"
	}

	node.masterURI = os.Getenv("ROS_MASTER_URI")
	if value, ok := specials["__master"]; ok {
		node.masterURI = value
	}
	if node.masterURI == "" {
		return nil, errors.New("ROS_MASTER_URI is not set")
	}

	node.nameResolver = newNameResolver(node.namespace, node.name, remapping)
	node.nonRosArgs = rest
	node.qualifiedName = node.nameResolver.nodeName
	node.logger = node.logger.WithField("node", node.qualifiedName)

	node.subscribers = make(map[string]*defaultSubscriber)
	node.publishers = make(map[string]*defaultPublisher)
	node.jobChan = make(chan func(), jobQueueSize)
	node.done = make(chan struct{})

	node.logger.Debugf("Master URI = %s", node.masterURI)

	// Parameters given as _name:=value are private to this node.
	for k, v := range params {
		key := node.nameResolver.resolve(PrivateNS + k)
		if _, err := callRosAPI(node.masterURI, "setParam", node.qualifiedName, key, loadParamFromString(v)); err != nil {
			return nil, errors.Wrapf(err, "set parameter %s", key)
		}
	}

	listener, err := listenTCP(node.listenIP)
	if err != nil {
		return nil, err
	}
	node.xmlrpcListener = listener
	node.xmlrpcURI = fmt.Sprintf("http://%s/", net.JoinHostPort(node.hostname, listenerPort(listener)))
	node.logger.Debugf("listen on http://%s", listener.Addr().String())

	m := map[string]xmlrpc.Method{
		"getBusStats":      func(callerID string) (interface{}, error) { return node.getBusStats(callerID) },
		"getBusInfo":       func(callerID string) (interface{}, error) { return node.getBusInfo(callerID) },
		"getMasterUri":     func(callerID string) (interface{}, error) { return node.getMasterURI(callerID) },
		"shutdown":         func(callerID string, msg string) (interface{}, error) { return node.shutdown(callerID, msg) },
		"getPid":           func(callerID string) (interface{}, error) { return node.getPid(callerID) },
		"getSubscriptions": func(callerID string) (interface{}, error) { return node.getSubscriptions(callerID) },
		"getPublications":  func(callerID string) (interface{}, error) { return node.getPublications(callerID) },
		"paramUpdate": func(callerID string, key string, value interface{}) (interface{}, error) {
			return node.paramUpdate(callerID, key, value)
		},
		"publisherUpdate": func(callerID string, topic string, publishers []interface{}) (interface{}, error) {
			return node.publisherUpdate(callerID, topic, publishers)
		},
		"requestTopic": func(callerID string, topic string, protocols []interface{}) (interface{}, error) {
			return node.requestTopic(callerID, topic, protocols)
		},
	}
	node.xmlrpcHandler = xmlrpc.NewHandler(m)
	node.httpServer = &http.Server{Handler: node.xmlrpcHandler}
	go func() {
		if err := node.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			node.logger.WithError(err).Error("XMLRPC server stopped")
		}
	}()

	node.interruptChan = make(chan os.Signal, 1)
	signal.Notify(node.interruptChan, os.Interrupt)
	go func() {
		select {
		case <-node.interruptChan:
			node.logger.Info("Interrupted")
			node.stop()
		case <-node.done:
		}
	}()

	node.logger.Debug("Started")
	return node, nil
}

// stop marks the node as no longer OK. It is idempotent.
func (node *defaultNode) stop() {
	node.shutdownOnce.Do(func() {
		close(node.done)
	})
}

func (node *defaultNode) OK() bool {
	select {
	case <-node.done:
		return false
	default:
		return true
	}
}

func (node *defaultNode) Name() string {
	return node.qualifiedName
}

func (node *defaultNode) Namespace() string {
	return node.namespace
}

func (node *defaultNode) Logger() *logrus.Entry {
	return node.logger
}

func (node *defaultNode) NonRosArgs() []string {
	return node.nonRosArgs
}

func (node *defaultNode) getBusStats(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) getBusInfo(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) getMasterURI(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusSuccess, "Success", node.masterURI), nil
}

func (node *defaultNode) shutdown(callerID string, msg string) (interface{}, error) {
	node.logger.Infof("Shutdown requested by %s: %s", callerID, msg)
	node.stop()
	return buildRosAPIResult(APIStatusSuccess, "Success", 0), nil
}

func (node *defaultNode) getPid(callerID string) (interface{}, error) {
	return buildRosAPIResult(APIStatusSuccess, "Success", os.Getpid()), nil
}

func (node *defaultNode) getSubscriptions(callerID string) (interface{}, error) {
	node.mu.Lock()
	defer node.mu.Unlock()
	result := []interface{}{}
	for t, s := range node.subscribers {
		result = append(result, []interface{}{t, s.msgType.Name()})
	}
	return buildRosAPIResult(APIStatusSuccess, "Success", result), nil
}

func (node *defaultNode) getPublications(callerID string) (interface{}, error) {
	node.mu.Lock()
	defer node.mu.Unlock()
	result := []interface{}{}
	for t, p := range node.publishers {
		result = append(result, []interface{}{t, p.msgType.Name()})
	}
	return buildRosAPIResult(APIStatusSuccess, "Success", result), nil
}

func (node *defaultNode) paramUpdate(callerID string, key string, value interface{}) (interface{}, error) {
	return buildRosAPIResult(APIStatusError, "Not implemented", 0), nil
}

func (node *defaultNode) publisherUpdate(callerID string, topic string, publishers []interface{}) (interface{}, error) {
	node.logger.Debugf("Slave API publisherUpdate(%s, %s) called.", callerID, topic)
	node.mu.Lock()
	sub, ok := node.subscribers[topic]
	node.mu.Unlock()
	if !ok {
		return buildRosAPIResult(APIStatusFailure, "No such topic", 0), nil
	}
	pubURIs := make([]string, 0, len(publishers))
	for _, uri := range publishers {
		if s, ok := uri.(string); ok {
			pubURIs = append(pubURIs, s)
		}
	}
	sub.updatePublishers(pubURIs)
	return buildRosAPIResult(APIStatusSuccess, "Success", 0), nil
}

func (node *defaultNode) requestTopic(callerID string, topic string, protocols []interface{}) (interface{}, error) {
	node.logger.Debugf("Slave API requestTopic(%s, %s, ...) called.", callerID, topic)
	node.mu.Lock()
	pub, ok := node.publishers[topic]
	node.mu.Unlock()
	if !ok {
		return buildRosAPIResult(APIStatusFailure, "No such topic", nil), nil
	}
	for _, v := range protocols {
		protocolParams, ok := v.([]interface{})
		if !ok || len(protocolParams) == 0 {
			continue
		}
		if name, _ := protocolParams[0].(string); name != "TCPROS" {
			continue
		}
		host, portStr := pub.hostAndPort()
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		return buildRosAPIResult(APIStatusSuccess, "Success", []interface{}{"TCPROS", host, port}), nil
	}
	return buildRosAPIResult(APIStatusFailure, "No supported protocol", []interface{}{}), nil
}

func (node *defaultNode) NewPublisher(topic string, msgType MessageType) (Publisher, error) {
	return node.newPublisher(topic, msgType, false)
}

func (node *defaultNode) NewLatchedPublisher(topic string, msgType MessageType) (Publisher, error) {
	return node.newPublisher(topic, msgType, true)
}

func (node *defaultNode) newPublisher(topic string, msgType MessageType, latch bool) (Publisher, error) {
	name := node.nameResolver.resolve(topic)
	node.mu.Lock()
	defer node.mu.Unlock()
	if pub, ok := node.publishers[name]; ok {
		return pub, nil
	}

	pub, err := newDefaultPublisher(node, name, msgType, latch)
	if err != nil {
		return nil, err
	}
	if _, err := callRosAPI(node.masterURI, "registerPublisher",
		node.qualifiedName, name, msgType.Name(), node.xmlrpcURI); err != nil {
		pub.close()
		return nil, errors.Wrapf(err, "register publisher %s", name)
	}
	node.publishers[name] = pub
	node.waitGroup.Add(1)
	go pub.start(&node.waitGroup)
	return pub, nil
}

func (node *defaultNode) removePublisher(topic string) {
	node.mu.Lock()
	delete(node.publishers, topic)
	node.mu.Unlock()
}

func (node *defaultNode) NewSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error) {
	return node.newSubscriber(topic, msgType, callback, false)
}

func (node *defaultNode) NewConcurrentSubscriber(topic string, msgType MessageType, callback interface{}) (Subscriber, error) {
	return node.newSubscriber(topic, msgType, callback, true)
}

func (node *defaultNode) newSubscriber(topic string, msgType MessageType, callback interface{}, concurrent bool) (Subscriber, error) {
	if err := checkCallback(callback); err != nil {
		return nil, err
	}
	name := node.nameResolver.resolve(topic)
	node.mu.Lock()
	defer node.mu.Unlock()
	if sub, ok := node.subscribers[name]; ok {
		sub.addCallback(callback)
		return sub, nil
	}

	result, err := callRosAPI(node.masterURI, "registerSubscriber",
		node.qualifiedName, name, msgType.Name(), node.xmlrpcURI)
	if err != nil {
		return nil, errors.Wrapf(err, "register subscriber %s", name)
	}
	list, ok := result.([]interface{})
	if !ok {
		return nil, errors.Errorf("registerSubscriber returned %T, not a list", result)
	}
	var publishers []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			publishers = append(publishers, s)
		}
	}
	node.logger.Debugf("Publisher URI list for %s: %v", name, publishers)

	sub := newDefaultSubscriber(node, name, msgType, callback, concurrent)
	node.subscribers[name] = sub
	sub.updatePublishers(publishers)
	return sub, nil
}

func (node *defaultNode) removeSubscriber(topic string) {
	node.mu.Lock()
	delete(node.subscribers, topic)
	node.mu.Unlock()
}

// enqueue hands a callback job to SpinOnce/Spin. It gives up when the node
// shuts down or ctx is done.
func (node *defaultNode) enqueue(ctx context.Context, job func()) bool {
	select {
	case node.jobChan <- job:
		return true
	case <-node.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (node *defaultNode) NewServiceClient(service string, srvType ServiceType) ServiceClient {
	name := node.nameResolver.resolve(service)
	return newDefaultServiceClient(node, name, srvType)
}

func (node *defaultNode) ServiceAvailable(service string) bool {
	name := node.nameResolver.resolve(service)
	if err := probeService(node, name); err != nil {
		node.logger.WithError(err).Debugf("Service %s is not available", name)
		return false
	}
	return true
}

// SpinOnce runs every callback job that is already queued and returns.
func (node *defaultNode) SpinOnce() {
	for {
		select {
		case job := <-node.jobChan:
			job()
		default:
			return
		}
	}
}

// Spin runs queued callbacks until the node is shut down.
func (node *defaultNode) Spin() {
	ticker := time.NewTicker(spinPollInterval)
	defer ticker.Stop()
	for node.OK() {
		select {
		case job := <-node.jobChan:
			job()
		case <-ticker.C:
		case <-node.done:
		}
	}
}

func (node *defaultNode) Shutdown() {
	node.logger.Debug("Shutting node down")
	node.stop()
	signal.Stop(node.interruptChan)

	node.mu.Lock()
	subs := make([]*defaultSubscriber, 0, len(node.subscribers))
	for _, s := range node.subscribers {
		subs = append(subs, s)
	}
	pubs := make([]*defaultPublisher, 0, len(node.publishers))
	for _, p := range node.publishers {
		pubs = append(pubs, p)
	}
	node.mu.Unlock()

	for _, s := range subs {
		s.Shutdown()
	}
	for _, p := range pubs {
		p.Shutdown()
	}
	node.waitGroup.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := node.httpServer.Shutdown(ctx); err != nil {
		node.logger.WithError(err).Warn("XMLRPC server shutdown")
	}
	node.xmlrpcHandler.WaitForShutdown()
	node.logger.Debug("Shutting node down completed")
}

func (node *defaultNode) GetParam(key string) (interface{}, error) {
	name := node.nameResolver.resolve(key)
	return callRosAPI(node.masterURI, "getParam", node.qualifiedName, name)
}

func (node *defaultNode) SetParam(key string, value interface{}) error {
	name := node.nameResolver.resolve(key)
	_, err := callRosAPI(node.masterURI, "setParam", node.qualifiedName, name, value)
	return err
}

func (node *defaultNode) HasParam(key string) (bool, error) {
	name := node.nameResolver.resolve(key)
	result, err := callRosAPI(node.masterURI, "hasParam", node.qualifiedName, name)
	if err != nil {
		return false, err
	}
	hasParam, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("hasParam returned %T", result)
	}
	return hasParam, nil
}

func (node *defaultNode) SearchParam(key string) (string, error) {
	result, err := callRosAPI(node.masterURI, "searchParam", node.qualifiedName, key)
	if err != nil {
		return "", err
	}
	foundKey, ok := result.(string)
	if !ok {
		return "", errors.Errorf("searchParam returned %T", result)
	}
	return foundKey, nil
}

func (node *defaultNode) DeleteParam(key string) error {
	name := node.nameResolver.resolve(key)
	_, err := callRosAPI(node.masterURI, "deleteParam", node.qualifiedName, name)
	return err
}
