package ros

import (
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// determineHost picks the address advertised to other nodes and reports
// whether it is loopback-only.
func determineHost() (string, bool) {
	if rosHostname, ok := os.LookupEnv("ROS_HOSTNAME"); ok {
		return rosHostname, rosHostname == "localhost"
	}
	if rosIP, ok := os.LookupEnv("ROS_IP"); ok {
		return rosIP, isLoopbackAddress(rosIP)
	}
	if osHostname, err := os.Hostname(); err == nil && osHostname != "localhost" {
		return osHostname, false
	}
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				return ipnet.IP.String(), false
			}
		}
	}
	return "127.0.0.1", true
}

func isLoopbackAddress(addr string) bool {
	return addr == "localhost" || addr == "::1" || strings.HasPrefix(addr, "127.")
}

// listenTCP listens on an ephemeral port of address.
func listenTCP(address string) (net.Listener, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(address, "0"))
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", address)
	}
	return listener, nil
}

func listenerPort(listener net.Listener) string {
	_, port, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		return ""
	}
	return port
}
