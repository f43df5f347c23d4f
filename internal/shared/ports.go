package shared

import (
	"fmt"
	"net"
	"strconv"
)

// FindFreePort returns the first port in [start, start+attempts) that accepts a TCP listener on host.
//
// Each candidate is bound once and released immediately. Nothing reserves the port afterwards,
// so the caller's own bind can still lose a race with another process.
func FindFreePort(host string, start, attempts int) (int, error) {
	if attempts < 1 {
		return 0, fmt.Errorf("%w: attempts must be at least 1, got %d", ErrInvalidArgument, attempts)
	}
	if start < 1 || start > maxPort {
		return 0, fmt.Errorf("%w: start port %d out of range", ErrInvalidArgument, start)
	}

	last := min(start+attempts-1, maxPort)
	for port := start; port <= last; port++ {
		if probePort(host, port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w: no free port in range %d-%d", ErrNoPortAvailable, start, last)
}

func probePort(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}
