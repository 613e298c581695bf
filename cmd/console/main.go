// Command console serves the screens as a JSON API with a live activity feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/config"
	"github.com/your-org/frfront/internal/console"
	"github.com/your-org/frfront/internal/console/handlers"
	"github.com/your-org/frfront/internal/console/ws"
	"github.com/your-org/frfront/internal/models"
	"github.com/your-org/frfront/internal/observability"
	"github.com/your-org/frfront/internal/queue"
	"github.com/your-org/frfront/internal/screens"
	"github.com/your-org/frfront/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting console", "port", cfg.Server.Port, "upstream", cfg.API.BaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api, err := client.New(cfg.API)
	if err != nil {
		slog.Error("create recognition client", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	checks := map[string]handlers.Check{
		"upstream": func(ctx context.Context) error {
			_, err := api.GeneralHealth(ctx)
			return err
		},
	}
	var (
		opts    []screens.Option
		history handlers.ActivityLister
		objects handlers.ArchiveReader
	)

	// Postgres keeps the activity history.
	if cfg.Database.Enabled() {
		db, err := storage.NewPostgresStore(ctx, cfg.Database)
		if err != nil {
			slog.Error("connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			slog.Warn("ensure activity schema", "error", err)
		}
		opts = append(opts, screens.WithRecorder(db))
		history = db
		checks["postgres"] = db.Ping
	}

	// MinIO archives downloaded exports.
	if cfg.MinIO.Enabled() {
		archive, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			slog.Error("connect to minio", "error", err)
			os.Exit(1)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			slog.Warn("ensure minio bucket", "error", err)
		}
		opts = append(opts, screens.WithArchiver(archive))
		objects = archive
		checks["minio"] = archive.Ping
	}

	// With NATS, activities from every frontend (this console and frctl)
	// reach the hub through the ACTIVITY stream; without it the hub only
	// sees this console's own actions.
	if cfg.NATS.Enabled() {
		producer, err := queue.NewProducer(cfg.NATS.URL)
		if err != nil {
			slog.Error("connect to nats", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		if err := producer.EnsureStreams(ctx); err != nil {
			slog.Warn("ensure nats streams", "error", err)
		}
		opts = append(opts, screens.WithRecorder(screens.RecorderFunc(producer.PublishActivity)))
		checks["nats"] = func(context.Context) error { return producer.Ping() }

		consumer, err := queue.NewConsumer(cfg.NATS.URL)
		if err != nil {
			slog.Error("create activity consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()

		err = consumer.ConsumeActivities(ctx, "console-activity", func(_ context.Context, a models.Activity) error {
			hub.BroadcastActivity(a)
			return nil
		})
		if err != nil {
			slog.Warn("start activity consumer", "error", err)
		}
	} else {
		opts = append(opts, screens.WithRecorder(hub))
	}

	router := console.NewRouter(console.RouterConfig{
		APIKey:  cfg.Server.APIKey,
		Screens: screens.NewService(api, opts...),
		History: history,
		Archive: objects,
		Hub:     hub,
		Checks:  checks,
	})

	// Upstream calls may legitimately take connect+read+write timeouts.
	upstreamBudget := cfg.API.ConnectTimeout + cfg.API.ReadTimeout + cfg.API.WriteTimeout
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: upstreamBudget + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("console listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down console...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("console stopped")
}
