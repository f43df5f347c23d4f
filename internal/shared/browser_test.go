package shared

import (
	"errors"
	"os/exec"
	"slices"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	url := "http://localhost:8000/index.html"
	tc := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", url}},
		{goos: "linux", want: []string{"xdg-open", url}},
		{goos: "freebsd", want: []string{"xdg-open", url}},
		{goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler", url}},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := BrowserCommand(tt.goos, url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(cmd.Args, tt.want) {
				t.Errorf("expected args %v, got %v", tt.want, cmd.Args)
			}
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		if _, err := BrowserCommand("plan9", url); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() {
		getRuntime, startCommand = origRuntime, origStart
	})

	t.Run("starts the platform command", func(t *testing.T) {
		var started *exec.Cmd
		getRuntime = func() string { return "linux" }
		startCommand = func(cmd *exec.Cmd) error {
			started = cmd
			return nil
		}

		if err := OpenBrowser("http://localhost:8000/"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open to be started, got %v", started)
		}
	})

	t.Run("wraps start failures", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		startCommand = func(*exec.Cmd) error { return exec.ErrNotFound }

		err := OpenBrowser("http://localhost:8000/")
		if !errors.Is(err, ErrBrowserLaunch) {
			t.Errorf("expected ErrBrowserLaunch, got %v", err)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "aix" }
		startCommand = func(*exec.Cmd) error {
			t.Fatal("no command should start on an unsupported platform")
			return nil
		}

		if err := OpenBrowser("http://localhost:8000/"); !errors.Is(err, ErrBrowserLaunch) {
			t.Errorf("expected ErrBrowserLaunch, got %v", err)
		}
	})
}
