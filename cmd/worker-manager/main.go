// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"placeholder-workers/internal/common/camunda"
	"placeholder-workers/internal/common/config"
	"placeholder-workers/internal/common/database"
	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/observability"
	"placeholder-workers/internal/placeholder"

	dg "placeholder-workers/internal/workers/content/detect-gaps"
	mt "placeholder-workers/internal/workers/content/migrate-template"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	defer camundaClient.Close()
	zapLog.Info("Camunda client connected successfully")

	// --- Build the placeholder engine ---
	rules := placeholder.NewRuleTable()
	if cfg.Engine.RulesRegistryPath != "" {
		rules, err = rules.WithRegistry(cfg.Engine.RulesRegistryPath)
		if err != nil {
			zapLog.Fatal("rules registry load failed", zap.Error(err))
		}
		zapLog.Info("rules registry merged",
			zap.String("path", cfg.Engine.RulesRegistryPath),
			zap.Int("totalRules", len(rules.Rules())),
		)
	}
	engine := placeholder.NewEngine(rules, log)
	cacheTTL := time.Duration(cfg.Engine.CacheTTL) * time.Second

	var migrator placeholder.Migrator
	switch cfg.Engine.CacheBackend {
	case "redis":
		// --- Init Redis with retry ---
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		migrator = placeholder.NewRedisCache(engine, redisClient.Client, cacheTTL, log)
	default:
		migrator = placeholder.NewCache(engine, cacheTTL, cfg.Engine.CacheMaxEntries, log)
	}

	detector := placeholder.NewHybridDetector(
		migrator,
		placeholder.NewGapDetectorWithWindow(rules, cfg.Engine.ContextWindow),
		log,
	)

	// --- Register workers ---
	var workers []*camunda.CamundaWorker

	if config.IsWorkerEnabled(cfg, mt.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, mt.TaskType)
		handler := mt.NewHandler(
			&mt.Config{
				Timeout:  time.Duration(wcfg.Timeout) * time.Millisecond,
				CacheTTL: cacheTTL,
			},
			migrator, log,
		)
		w := camunda.NewWorker(camundaClient.GetClient(), mt.TaskType, wcfg.MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if config.IsWorkerEnabled(cfg, dg.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, dg.TaskType)
		handler := dg.NewHandler(
			&dg.Config{
				Timeout:          time.Duration(wcfg.Timeout) * time.Millisecond,
				EnableValidation: cfg.Engine.EnableValidation,
			},
			detector, log,
		)
		w := camunda.NewWorker(camundaClient.GetClient(), dg.TaskType, wcfg.MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if len(workers) == 0 {
		zapLog.Fatal("no workers enabled, check the workers section of the config")
	}

	// --- HTTP: health, readiness, metrics, pprof ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "healthy",
				"version": cfg.App.Version,
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
		http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			stats := map[string]interface{}{
				"detection": detector.Metrics(),
			}
			if cacheStats, ok := detector.MigrationStatistics(); ok {
				stats["migration_cache"] = cacheStats
			}
			json.NewEncoder(w).Encode(stats)
		})
		http.Handle("/metrics", promhttp.Handler())

		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("http server stopped", zap.Error(err))
		}
	}()

	zapLog.Info("worker manager running",
		zap.Int("workers", len(workers)),
		zap.String("cacheBackend", cfg.Engine.CacheBackend),
	)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	zapLog.Info("worker manager stopped")
}
