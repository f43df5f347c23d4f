// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// OccupyPorts finds n consecutive loopback ports and holds a listener on each of them except the offsets in free.
//
// Returns the first port of the range. Listeners are closed when the test ends.
// Ports that are already taken by another process count as occupied.
func OccupyPorts(t *testing.T, host string, n int, free ...int) int {
	t.Helper()

	for range 20 {
		start := ephemeralPort(t, host)
		if start+n-1 > 65535 {
			continue
		}

		var held []net.Listener
		for i := range n {
			if slices.Contains(free, i) {
				continue
			}
			if ln, err := net.Listen("tcp", hostPort(host, start+i)); err == nil {
				held = append(held, ln)
			}
		}

		ok := true
		for _, i := range free {
			ln, err := net.Listen("tcp", hostPort(host, start+i))
			if err != nil {
				ok = false
				break
			}
			ln.Close()
		}

		if ok {
			t.Cleanup(func() {
				for _, ln := range held {
					ln.Close()
				}
			})
			return start
		}

		for _, ln := range held {
			ln.Close()
		}
	}

	t.Fatalf("could not reserve a range of %d ports on %s", n, host)
	return 0
}

func ephemeralPort(t *testing.T, host string) int {
	t.Helper()
	ln, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", host, err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func hostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// WriteFile creates dir/name (and any parent directories) with content.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

// SamePath reports whether a and b name the same directory once symlinks are resolved.
func SamePath(t *testing.T, a, b string) bool {
	t.Helper()
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", a, err)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", b, err)
	}
	return ra == rb
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
