package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/nutrigen-agent/internal/a2a"
	"github.com/BerylCAtieno/nutrigen-agent/internal/agent"
	"github.com/BerylCAtieno/nutrigen-agent/internal/backend"
	"github.com/BerylCAtieno/nutrigen-agent/internal/config"
	"github.com/BerylCAtieno/nutrigen-agent/internal/logging"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

func main() {
	configPath := flag.String("config", os.Getenv("AGENT_CONFIG"), "Path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	policy, err := report.ParsePolicy(cfg.Report.BMIPolicy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := backend.New(ctx, cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}
	defer client.Close()

	pipeline := report.New(client,
		report.WithTimeout(cfg.ReportTimeout()),
		report.WithPolicy(policy),
		report.WithLogger(logger.Named("report")),
	)

	baseURL := os.Getenv("PUBLIC_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	handler := a2a.NewA2AHandler(pipeline, agent.NewCard(baseURL), logger.Named("a2a"))

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), a2a.RequestLoggingMiddleware(logger.Named("http")))
	handler.Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("report agent starting",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", client.Name()),
		zap.Stringer("bmi_policy", policy),
		zap.Duration("report_timeout", cfg.ReportTimeout()),
	)
	logger.Info("endpoints",
		zap.String("agent_card", baseURL+"/.well-known/agent.json"),
		zap.String("a2a", baseURL+"/a2a/report"),
		zap.String("report", baseURL+"/api/report"),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ReportTimeout()+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
