package connection

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the FTP control port.
const DefaultPort = 21

// ParseAddress splits "host" or "host:port" and applies defaultPort when no
// port is given.
func ParseAddress(s string, defaultPort int) (string, int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "ftp://")
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return "", 0, fmt.Errorf("empty host")
	}

	if !strings.Contains(s, ":") {
		return s, defaultPort, nil
	}

	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %s: %w", s, err)
	}
	if host == "" {
		return "", 0, fmt.Errorf("invalid address %s: empty host", s)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in %s", s)
	}
	return host, port, nil
}

// JoinAddress formats host and port for dialing.
func JoinAddress(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
