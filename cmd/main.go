package main

import (
	"context"
	"os"

	"github.com/desertthunder/lyrics-serve/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if dir, err := shared.ExecutableDir(); err == nil {
		if err := shared.LoadEnv(dir); err != nil {
			logger.Warn("ignoring .env", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := rootCommand(runner)

	err := app.Run(context.Background(), os.Args)
	if code := exitCode(err); code != 0 {
		logger.Error("lyrics-serve failed", "error", err)
		os.Exit(code)
	}
}

// exitCode maps the result of a run to the process exit status.
//
// An interrupt ends the serve loop without an error, so it exits 0 like any other clean run.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
