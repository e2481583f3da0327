package ros

import (
	"bytes"
	"net"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const probeTimeout = time.Second

type defaultServiceClient struct {
	node    *defaultNode
	service string
	srvType ServiceType
	logger  *logrus.Entry
}

func newDefaultServiceClient(node *defaultNode, service string, srvType ServiceType) *defaultServiceClient {
	return &defaultServiceClient{
		node:    node,
		service: service,
		srvType: srvType,
		logger:  node.logger.WithField("service", service),
	}
}

// lookupService asks the master for the TCPROS address of service.
func lookupService(node *defaultNode, service string) (string, error) {
	result, err := callRosAPI(node.masterURI, "lookupService", node.qualifiedName, service)
	if err != nil {
		return "", err
	}
	rawURL, ok := result.(string)
	if !ok {
		return "", errors.Errorf("lookupService returned %T, not a string", result)
	}
	serviceURL, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, "parse service URI %s", rawURL)
	}
	return serviceURL.Host, nil
}

// probeService checks that service is registered and completes a TCPROS
// handshake with it without issuing a request.
func probeService(node *defaultNode, service string) error {
	addr, err := lookupService(node, service)
	if err != nil {
		return err
	}
	conn, err := net.DialTimeout("tcp", addr, probeTimeout)
	if err != nil {
		return errors.Wrapf(err, "dial %s", service)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(probeTimeout))

	headers := []header{
		{"probe", "1"},
		{"md5sum", "*"},
		{"callerid", node.qualifiedName},
		{"service", service},
	}
	if err := writeConnectionHeader(headers, conn); err != nil {
		return err
	}
	resHeaders, err := readConnectionHeader(conn)
	if err != nil {
		return err
	}
	if msg, ok := headerMap(resHeaders)["error"]; ok {
		return errors.Errorf("service %s: %s", service, msg)
	}
	return nil
}

func (c *defaultServiceClient) Call(srv Service) error {
	logger := c.logger

	addr, err := lookupService(c.node, c.service)
	if err != nil {
		return err
	}
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return errors.Wrapf(err, "dial %s", c.service)
	}
	defer conn.Close()
	if c.node.callTimeout > 0 {
		conn.SetDeadline(time.Now().Add(c.node.callTimeout))
	}

	// 1. Write connection header
	md5sum := c.srvType.MD5Sum()
	srvName := c.srvType.Name()
	headers := []header{
		{"service", c.service},
		{"md5sum", md5sum},
		{"type", srvName},
		{"callerid", c.node.qualifiedName},
	}
	if err := writeConnectionHeader(headers, conn); err != nil {
		return err
	}

	// 2. Read response header
	resHeaders, err := readConnectionHeader(conn)
	if err != nil {
		return err
	}
	fields := headerMap(resHeaders)
	logger.Debugf("TCPROS response header: %v", fields)
	if msg, ok := fields["error"]; ok {
		return errors.Errorf("service %s refused connection: %s", c.service, msg)
	}
	if fields["md5sum"] != md5sum {
		return errors.Errorf("incompatible service type %s/%s, expected %s/%s",
			fields["type"], fields["md5sum"], srvName, md5sum)
	}

	// 3. Send request
	var buf bytes.Buffer
	if err := srv.ReqMessage().Serialize(&buf); err != nil {
		return errors.Wrap(err, "serialize request")
	}
	if err := writeFrame(conn, buf.Bytes()); err != nil {
		return errors.Wrap(err, "write request")
	}

	// 4. Read OK byte
	ok := make([]byte, 1)
	if _, err := conn.Read(ok); err != nil {
		return errors.Wrap(err, "read response status")
	}
	payload, err := readFrame(conn)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if ok[0] == 0 {
		return errors.Errorf("service %s failed: %s", c.service, string(payload))
	}

	// 5. Receive response
	if err := srv.ResMessage().Deserialize(bytes.NewReader(payload)); err != nil {
		return errors.Wrap(err, "deserialize response")
	}
	return nil
}

func (*defaultServiceClient) Shutdown() {}
