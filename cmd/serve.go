package main

import (
	"context"
	"net"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrics-serve/internal/journal"
	"github.com/desertthunder/lyrics-serve/internal/server"
	"github.com/desertthunder/lyrics-serve/internal/shared"
	"github.com/desertthunder/lyrics-serve/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	bannerTitle = "LED Lyrics Player local server"
	topPaths    = 5
)

// Serve serves the launcher directory on the first free loopback port and opens the entry page in the browser.
//
// Blocks until interrupted; an interrupt is a clean exit.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	root, err := shared.ResolveRoot(cmd.String("dir"))
	if err != nil {
		return r.fail("cannot resolve the directory to serve", err)
	}
	if err := os.Chdir(root); err != nil {
		return r.fail("cannot change to "+root, err)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return r.fail("invalid configuration", err)
	}

	level, _ := shared.ParseLogLevel(config.Log.Level)
	shared.SetLogLevel(r.logger, level)
	logger := shared.WithLogger(r.logger, "root", root)

	port, err := shared.FindFreePort(config.Server.Host, config.Server.Port, config.Server.Attempts)
	if err != nil {
		return r.fail("no free port", err)
	}
	logger.Debug("found free port", "port", port)

	requests, err := journal.Open()
	if err != nil {
		return r.fail("cannot open the request journal", err)
	}
	defer requests.Close()

	types := server.NewMIMETable(config.MIME)
	logger.Debug("content type overrides", "types", types.Overrides())

	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.Logging(logger), server.Journal(requests, logger))
	router.Handler(server.NewStaticHandler(root, types))

	srv := server.New(server.Options{
		Addr:            net.JoinHostPort(config.Server.Host, strconv.Itoa(port)),
		Handler:         router,
		ShutdownTimeout: config.Server.ShutdownTimeout,
		Logger:          logger,
	})
	if err := srv.Listen(); err != nil {
		return r.fail("server failed to start", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry := entryURL(config.Server.Host, srv.Port(), config.Server.Entry)
	r.writePlain("%s", r.palette.Banner(ui.BannerInfo{
		Title: bannerTitle,
		URL:   entry,
		Port:  srv.Port(),
		Root:  root,
	}))

	if config.Server.OpenBrowser {
		r.launchBrowser(entry)
	} else {
		r.writePlain("Open this URL in your browser:\n  %s\n", entry)
	}

	logger.Info("serving", "addr", srv.Addr().String())
	if err := srv.Serve(ctx); err != nil {
		return r.fail("server stopped unexpectedly", err)
	}

	r.writePlainln("%s", r.palette.OK("■ Server stopped"))
	r.reportSummary(requests)
	r.logRequests(logger, requests)
	return nil
}

// launchBrowser opens url, degrading to printing it when no browser can be started.
func (r *Runner) launchBrowser(url string) {
	if err := r.openBrowser(url); err != nil {
		r.logger.Warn("failed to open browser automatically", "error", err)
		r.writePlainln("%s", r.palette.Warn("⚠ Could not open browser automatically."))
		r.writePlain("Please open this URL in your browser:\n  %s\n", url)
		return
	}
	r.writePlain("%s\n", r.palette.OK("→ Opened "+url+" in your default browser"))
}

func (r *Runner) reportSummary(requests *journal.Journal) {
	summary, err := requests.Summary(context.Background(), topPaths)
	if err != nil {
		r.logger.Warn("failed to summarize requests", "error", err)
		return
	}

	r.writePlain("Served %d requests (%d errors, %d bytes)\n", summary.Requests, summary.Errors, summary.Bytes)
	for _, pc := range summary.TopPaths {
		r.writePlain("  %5d  %s\n", pc.Count, pc.Path)
	}
}

// logRequests lists every journaled request at debug level.
func (r *Runner) logRequests(logger *log.Logger, requests *journal.Journal) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	entries, err := requests.Entries(context.Background())
	if err != nil {
		logger.Warn("failed to list requests", "error", err)
		return
	}
	for _, e := range entries {
		logger.Debug("request",
			"id", e.RequestID, "method", e.Method, "path", e.Path,
			"status", e.Status, "bytes", e.Bytes, "duration", e.Duration)
	}
}

// fail reports err on the console and returns it for the exit status.
func (r *Runner) fail(msg string, err error) error {
	r.writePlain("%s\n", r.palette.Err("✗ Error: "+msg+": "+err.Error()))
	return err
}

// entryURL builds the page URL for the browser. Loopback hosts are shown as localhost.
func entryURL(host string, port int, entry string) string {
	if shared.IsLoopback(host) {
		host = "localhost"
	}
	base := &url.URL{Scheme: "http", Host: net.JoinHostPort(host, strconv.Itoa(port)), Path: "/"}

	ref, err := url.Parse(strings.TrimLeft(entry, "/"))
	if err != nil {
		base.Path = "/" + strings.TrimLeft(entry, "/")
		return base.String()
	}
	return base.ResolveReference(ref).String()
}
