package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
	"github.com/carebridge/intake-ai-platform/internal/api/router"
	"github.com/carebridge/intake-ai-platform/internal/appointment"
	appconfig "github.com/carebridge/intake-ai-platform/internal/config"
	"github.com/carebridge/intake-ai-platform/internal/http/handlers"
	"github.com/carebridge/intake-ai-platform/internal/intake"
	"github.com/carebridge/intake-ai-platform/internal/matching"
	"github.com/carebridge/intake-ai-platform/internal/notify"
	"github.com/carebridge/intake-ai-platform/internal/observability/metrics"
	"github.com/carebridge/intake-ai-platform/internal/orchestrator"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

func main() {
	// Load .env in development; ignore if absent
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting intake-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	directory, err := loadDirectory(cfg.SpecialistsFile)
	if err != nil {
		logger.Error("failed to load specialist roster", "error", err, "path", cfg.SpecialistsFile)
		os.Exit(1)
	}
	logger.Info("specialist roster loaded", "count", directory.Len())

	// Redis session store
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	sessions := intake.NewSessionStore(redisClient, nil)

	// OpenAI-backed analysis
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	az := analyzer.NewOpenAIAnalyzer(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, logger)
	matcher := matching.NewService(directory, az, logger)

	sender := newEmailSender(cfg, logger)

	// Appointment persistence: always the JSON file, plus Postgres when
	// configured
	stores := []appointment.Store{appointment.NewFileStore(cfg.AppointmentFile)}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		stores = append(stores, appointment.NewPostgresStore(db))
	}

	finalizer := appointment.NewFinalizer(sender, logger, stores...)
	orch := orchestrator.New(finalizer, logger)
	m := metrics.NewIntakeMetrics(nil)

	intakeHandler := handlers.NewIntakeHandler(handlers.IntakeConfig{
		Sessions:     sessions,
		Analyzer:     az,
		Matcher:      matcher,
		Orchestrator: orch,
		Finalizer:    finalizer,
		Metrics:      m,
		Logger:       logger,
		HorizonWeeks: cfg.ScheduleHorizonWeeks,
		SlotMinutes:  cfg.SlotDurationMinutes,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		ToolsHandler:       handlers.NewToolsHandler(sessions, orch, logger),
		SpecialistsHandler: handlers.NewSpecialistsHandler(directory, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// loadDirectory builds the specialist directory, from SPECIALISTS_FILE when
// set or the seeded defaults otherwise.
func loadDirectory(path string) (*matching.Directory, error) {
	specialists := matching.DefaultSpecialists()
	if path != "" {
		loaded, err := matching.LoadSpecialists(path)
		if err != nil {
			return nil, err
		}
		specialists = loaded
	}
	return matching.NewDirectory(specialists), nil
}

// newEmailSender returns the SendGrid sender when configured and the logging
// stub otherwise.
func newEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		return sg
	}
	logger.Info("sendgrid not configured, using stub email sender")
	return notify.NewStubEmailSender(logger)
}
