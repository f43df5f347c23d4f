//go:build unix

package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"

	tu "github.com/desertthunder/lyrics-serve/internal/testing"
)

func TestServeInterrupt(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			site := newSite(t)
			start := tu.OccupyPorts(t, loopback, 1, 0)

			h := startServe(t, nil, "--dir", site, "--port", strconv.Itoa(start), "--attempts", "1")
			url := h.waitOpened(t)

			if resp, _ := get(t, url); resp.StatusCode != http.StatusOK {
				t.Fatalf("expected the entry page, got %d", resp.StatusCode)
			}

			if err := syscall.Kill(os.Getpid(), sig); err != nil {
				t.Fatalf("failed to signal: %v", err)
			}
			err := h.wait(t)
			if err != nil {
				t.Fatalf("expected clean shutdown on %s, got %v", sig, err)
			}
			if code := exitCode(err); code != 0 {
				t.Errorf("expected exit 0, got %d", code)
			}

			out := h.output.String()
			for _, want := range []string{"Server stopped", "Served 1 requests"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}
