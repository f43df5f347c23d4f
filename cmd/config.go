package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/desertthunder/lyrics-serve/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the config file (relative to the working directory) and applies explicitly set flags on top.
//
// The default config.toml is optional; a path passed with --config must exist.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")

	config, err := shared.LoadConfig(path)
	switch {
	case err == nil:
		r.logger.Debug("loaded config", "path", path)
	case errors.Is(err, shared.ErrMissingConfig) && !cmd.IsSet("config"):
		config = shared.DefaultConfig()
	default:
		return nil, err
	}

	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("attempts") {
		config.Server.Attempts = cmd.Int("attempts")
	}
	if cmd.IsSet("entry") {
		config.Server.Entry = cmd.String("entry")
	}
	if cmd.Bool("no-browser") {
		config.Server.OpenBrowser = false
	}
	if cmd.IsSet("log-level") {
		config.Log.Level = cmd.String("log-level")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigInit writes the example configuration into the served directory.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	root, err := shared.ResolveRoot(cmd.String("dir"))
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	if err := shared.CreateConfigFile(path, cmd.Bool("force")); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Wrote %s\n", path)
}
