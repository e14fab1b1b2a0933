package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/cache"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/config"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/ingest"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/providers/jsonl"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/registry"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/report"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/retry"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/stats"
	"github.com/XavierBriggs/fortuna/services/season-stats/internal/writer"
)

func main() {
	log.Println("Starting Season Stats...")

	if err := run(); err != nil {
		log.Fatalf("Season Stats failed: %v", err)
	}
}

// run owns every resource so deferred cleanup happens before main exits
func run() error {
	// Load configuration from environment
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.WithArgs(os.Args[1:])

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Optional Redis client shared by the cache sink and stream publisher
	var redisClient redis.Cmdable
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("parse Redis URL: %w", err)
		}

		client := redis.NewClient(opts)
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to Redis: %w", err)
		}
		log.Println("Connected to Redis")
		redisClient = client
	}

	// Optional SQL export database
	var db *sql.DB
	if cfg.SQL.Driver != "" {
		db, err = writer.Open(ctx, cfg.SQL.Driver, cfg.SQL.DSN)
		if err != nil {
			return fmt.Errorf("open export database: %w", err)
		}
		defer db.Close()
		log.Printf("Connected to %s", cfg.SQL.Driver)
	}

	// Aggregate
	store := stats.NewStore()
	streamPublisher := publisher.NewStreamPublisher(redisClient, cfg.Input.Season, cfg.Redis.StreamEnabled)

	opts := []ingest.Option{ingest.WithStrict(cfg.Input.Strict)}
	if streamPublisher.IsEnabled() {
		opts = append(opts, ingest.WithPublisher(streamPublisher))
	}
	processor := ingest.NewProcessor(store, opts...)
	log.Printf("Run %s reading %d input(s)", processor.RunID(), len(cfg.Input.Locations))

	source, closers, err := jsonl.OpenAll(ctx, cfg.Input.Locations)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}

	if _, err := processor.Run(ctx, source); err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	// Report
	if cfg.Input.Report {
		out := bufio.NewWriter(os.Stdout)
		if err := report.New(out).Render(store.Players()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	// Export
	snapshot := processor.Snapshot(cfg.Input.Season)

	sinks := registry.New()
	sinks.Register(writer.NewSQLWriter(db, cfg.SQL.Driver))
	sinks.Register(cache.NewRedisWriter(redisClient, cfg.Redis.CacheTTL))
	sinks.Register(streamPublisher)

	policy := retry.NewPolicy(cfg.Export.RetryAttempts, cfg.Export.RetryDelay)
	if err := sinks.ExportAll(ctx, snapshot, policy); err != nil {
		log.Printf("Some exports failed: %v", err)
	}

	if !cfg.Server.Enabled {
		log.Println("Season Stats finished")
		return nil
	}

	// Serve the finished season until interrupted
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handlers.NewRouter(handlers.NewHandler(snapshot), cfg.Server.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Serving season on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	log.Println("Season Stats stopped")
	return nil
}
