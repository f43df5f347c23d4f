// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const envPrefix = "LYRICS_SERVE_"

// rootCommand serves the launcher directory when run without a subcommand.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "lyrics-serve",
		Usage:    "Serve the lyrics player over http://localhost and open it in the browser",
		Version:  "1.0.0",
		Flags:    serveFlags(),
		Action:   r.Serve,
		Commands: r.register(),
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory to serve (default: the directory containing this binary)",
			Sources: cli.EnvVars(envPrefix + "DIR"),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file, relative to the served directory",
			Value:   "config.toml",
			Sources: cli.EnvVars(envPrefix + "CONFIG"),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Loopback address to bind",
			Sources: cli.EnvVars(envPrefix + "HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "First port to try",
			Sources: cli.EnvVars(envPrefix + "PORT"),
		},
		&cli.IntFlag{
			Name:    "attempts",
			Usage:   "Number of consecutive ports to try",
			Sources: cli.EnvVars(envPrefix + "ATTEMPTS"),
		},
		&cli.StringFlag{
			Name:    "entry",
			Usage:   "Page opened in the browser",
			Sources: cli.EnvVars(envPrefix + "ENTRY"),
		},
		&cli.BoolFlag{
			Name:    "no-browser",
			Usage:   "Print the URL instead of opening a browser",
			Sources: cli.EnvVars(envPrefix + "NO_BROWSER"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars(envPrefix + "LOG_LEVEL"),
		},
	}
}

// configCommand manages the configuration file.
//
// Subcommands inherit the root's --dir flag to locate the served directory.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config.toml into the served directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "File name, relative to the directory",
						Value: "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
