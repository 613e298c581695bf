// Command frctl runs the facial recognition screens from a terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/config"
	"github.com/your-org/frfront/internal/observability"
	"github.com/your-org/frfront/internal/queue"
	"github.com/your-org/frfront/internal/screens"
	"github.com/your-org/frfront/internal/storage"
)

// errUsage marks command line mistakes; they exit with status 2.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// env is what a command needs to do its work.
type env struct {
	svc    *screens.Service
	db     *storage.PostgresStore // nil unless configured
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("frctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "configs/config.yaml", "path to config file (optional)")
	server := fs.String("server", "", "recognition service URL, overrides config and FR_API_BASE_URL")
	asJSON := fs.Bool("json", false, "print views as JSON")
	verbose := fs.Bool("v", false, "log screen actions and upstream calls")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "frctl: unknown command %q\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "frctl: load config: %v\n", err)
		return 1
	}
	if *server != "" {
		cfg.API.BaseURL = config.NormalizeBaseURL(*server)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := observability.NewLogger(stderr, level, "text")
	slog.SetDefault(logger)

	api, err := client.New(cfg.API, client.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "frctl: %v\n", err)
		return 1
	}

	opts := []screens.Option{screens.WithLogger(logger)}
	e := &env{stdout: stdout}

	if cfg.Database.Enabled() {
		db, err := storage.NewPostgresStore(ctx, cfg.Database)
		if err != nil {
			logger.Warn("activity history disabled", "error", err)
		} else {
			defer db.Close()
			if err := db.EnsureSchema(ctx); err != nil {
				logger.Warn("ensure activity schema", "error", err)
			}
			e.db = db
			opts = append(opts, screens.WithRecorder(db))
		}
	}
	if cfg.NATS.Enabled() {
		producer, err := queue.NewProducer(cfg.NATS.URL)
		if err != nil {
			logger.Warn("activity publishing disabled", "error", err)
		} else {
			defer producer.Close()
			opts = append(opts, screens.WithRecorder(screens.RecorderFunc(producer.PublishActivity)))
		}
	}
	if cfg.MinIO.Enabled() {
		archive, err := storage.NewMinIOStore(cfg.MinIO)
		if err == nil {
			err = archive.EnsureBucket(ctx)
		}
		if err != nil {
			logger.Warn("download archive disabled", "error", err)
		} else {
			opts = append(opts, screens.WithArchiver(archive))
		}
	}
	e.svc = screens.NewService(api, opts...)

	v, err := cmd.run(ctx, e, fs.Args()[1:])
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "frctl %s: %v\nusage: frctl %s %s\n", cmd.name, err, cmd.name, cmd.args)
		return 2
	case err != nil:
		fmt.Fprintf(stderr, "frctl %s: %v\n", cmd.name, err)
		return 1
	case v == nil:
		return 0
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	} else {
		err = v.Render(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "frctl: write output: %v\n", err)
		return 1
	}
	if v.Failed() {
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: frctl [flags] <command> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}
