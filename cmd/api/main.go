package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"maternal-vitals/internal/api"
	"maternal-vitals/internal/config"
	"maternal-vitals/internal/data"
	"maternal-vitals/internal/logger"
	"maternal-vitals/internal/publish"
	"maternal-vitals/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		logger.Log.WithError(err).Fatal("API server failed")
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	store := data.Load(cfg.Data.Source)

	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := simulator.Options{
		Interval: cfg.Simulator.Interval,
		Profiles: cfg.Simulator.Profiles,
		Rand:     rand.New(rand.NewSource(seed)),
	}
	if cfg.Publish.Kafka.Enabled() {
		pub := publish.NewKafkaPublisher(cfg.Publish.Kafka)
		defer pub.Close()
		opts.Publisher = pub
		logger.WithFields(logrus.Fields{
			"brokers": cfg.Publish.Kafka.Brokers,
			"topic":   cfg.Publish.Kafka.Topic,
		}).Info("Publishing simulator cycles to Kafka")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(store, opts)
	go sim.Run(ctx)

	// No read or write timeouts: requests return whatever snapshot is current.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(store),
	}

	abs, _ := filepath.Abs(cfg.Data.Source)
	logger.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"source":  abs,
		"records": store.Len(),
	}).Info("Starting API server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}
	return nil
}
