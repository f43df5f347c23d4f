package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/lyrics-serve/internal/shared"
	tu "github.com/desertthunder/lyrics-serve/internal/testing"
)

func newTestServer(t *testing.T, addr string, h http.Handler) *Server {
	t.Helper()
	return New(Options{
		Addr:            addr,
		Handler:         h,
		ShutdownTimeout: time.Second,
		Logger:          shared.NewLogger(&bytes.Buffer{}),
	})
}

func TestServer(t *testing.T) {
	t.Run("Listen binds before Serve", func(t *testing.T) {
		srv := newTestServer(t, "127.0.0.1:0", statusHandler(http.StatusOK, "ok"))

		if srv.Addr() != nil || srv.Port() != 0 {
			t.Fatal("expected no address before Listen")
		}
		if err := srv.Listen(); err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		defer srv.Shutdown()

		if srv.Port() == 0 {
			t.Error("expected a bound port")
		}
		if err := srv.Listen(); err != nil {
			t.Errorf("second Listen should be a no-op, got %v", err)
		}
	})

	t.Run("Listen on an occupied port", func(t *testing.T) {
		start := tu.OccupyPorts(t, "127.0.0.1", 1)
		srv := newTestServer(t, fmt.Sprintf("127.0.0.1:%d", start), statusHandler(http.StatusOK, "ok"))

		err := srv.Listen()
		if !errors.Is(err, shared.ErrServerStartup) {
			t.Fatalf("expected ErrServerStartup, got %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := srv.Serve(ctx); !errors.Is(err, shared.ErrServerStartup) {
			t.Errorf("Serve should report the bind failure, got %v", err)
		}
	})

	t.Run("Serve until cancelled", func(t *testing.T) {
		srv := newTestServer(t, "127.0.0.1:0", statusHandler(http.StatusOK, "served"))
		if err := srv.Listen(); err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		addr := srv.Addr().String()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Serve(ctx) }()

		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != "served" {
			t.Errorf("expected served, got %q", body)
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}

		if conn, err := net.DialTimeout("tcp", addr, time.Second); err == nil {
			conn.Close()
			t.Error("expected the listener to be closed")
		}

		if err := srv.Shutdown(); err != nil {
			t.Errorf("second Shutdown should succeed, got %v", err)
		}
	})

	t.Run("Serve after cancel with a stalled download", func(t *testing.T) {
		started := make(chan struct{})
		var once sync.Once
		chunk := make([]byte, 1<<20)
		stalled := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			once.Do(func() { close(started) })
			for range 256 {
				if _, err := w.Write(chunk); err != nil {
					return
				}
			}
		})

		srv := New(Options{
			Addr:            "127.0.0.1:0",
			Handler:         stalled,
			ShutdownTimeout: 300 * time.Millisecond,
			Logger:          shared.NewLogger(&bytes.Buffer{}),
		})
		if err := srv.Listen(); err != nil {
			t.Fatalf("listen failed: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Serve(ctx) }()

		conn, err := net.Dial("tcp", srv.Addr().String())
		if err != nil {
			t.Fatalf("dial failed: %v", err)
		}
		defer conn.Close()
		if _, err := io.WriteString(conn, "GET /song.mp3 HTTP/1.1\r\nHost: localhost\r\n\r\n"); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("download never started")
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected nil after cancel, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after the shutdown timeout")
		}
	})

	t.Run("Serve binds lazily", func(t *testing.T) {
		srv := newTestServer(t, "127.0.0.1:0", statusHandler(http.StatusOK, "ok"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := srv.Serve(ctx); err != nil {
			t.Errorf("expected nil after immediate cancel, got %v", err)
		}
		if srv.Addr() == nil {
			t.Error("expected Serve to have bound an address")
		}
	})

	t.Run("Shutdown without Serve releases the socket", func(t *testing.T) {
		srv := newTestServer(t, "127.0.0.1:0", statusHandler(http.StatusOK, "ok"))
		if err := srv.Listen(); err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		addr := srv.Addr().String()

		if err := srv.Shutdown(); err != nil {
			t.Fatalf("shutdown failed: %v", err)
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			t.Fatalf("expected %s to be free again: %v", addr, err)
		}
		ln.Close()
	})

	t.Run("defaults", func(t *testing.T) {
		srv := New(Options{Addr: "127.0.0.1:0"})
		if srv.shutdownTimeout != defaultShutdownTimeout {
			t.Errorf("expected default timeout, got %v", srv.shutdownTimeout)
		}
		if srv.logger == nil {
			t.Error("expected default logger")
		}
	})
}
