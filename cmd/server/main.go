package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"francoggm/wiinpay-pix-relay/internal/app/notify"
	"francoggm/wiinpay-pix-relay/internal/app/payment"
	"francoggm/wiinpay-pix-relay/internal/app/pix"
	"francoggm/wiinpay-pix-relay/internal/app/server"
	"francoggm/wiinpay-pix-relay/internal/app/server/handlers"
	"francoggm/wiinpay-pix-relay/internal/app/workers"
	"francoggm/wiinpay-pix-relay/internal/app/workers/processors"
	"francoggm/wiinpay-pix-relay/internal/config"
	"francoggm/wiinpay-pix-relay/internal/logger"
	"francoggm/wiinpay-pix-relay/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	envFile, envErr := config.LoadEnvFiles(config.EnvFileCandidates(executableDir(), workingDir()))

	cfg := config.NewConfig()

	log := logger.New(cfg.Log.Level)
	defer log.Sync()

	if envErr != nil {
		log.Warn("env_file_error", zap.String("path", envFile), zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Webhook fan-out is optional
	var (
		notificationsCh chan any
		orchestrator    *workers.Orchestrator
		rdb             *redis.Client
	)
	// Workers outlive the signal context so buffered notifications drain after the server stops.
	workersCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Cache.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       0,
			PoolSize: cfg.Workers.NotifyCount,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis_unreachable", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		}

		notificationsCh = make(chan any, cfg.Workers.NotifyBufferSize)
		publisher := notify.NewRedisPublisher(rdb, cfg.Cache.Channel)
		orchestrator = workers.NewOrchestrator(cfg.Workers.NotifyCount, notificationsCh, processors.NewNotificationProcessor(publisher), log)
		orchestrator.StartWorkers(workersCtx)
	}

	pixService := pix.NewService(cfg, payment.NewClient(cfg.WiinPay.Timeout), m, log)
	srv := server.NewServer(cfg, handlers.NewHandlers(pixService, log, notificationsCh), m, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_error", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		log.Error("server_shutdown_error", zap.Error(shutdownErr))
	}

	stop()
	// Handlers may still be running after a failed shutdown, so the channel stays open.
	if orchestrator != nil && shutdownErr == nil {
		drainCtx, cancelDrain := context.WithTimeout(context.Background(), 5*time.Second)
		if dropped := orchestrator.Drain(drainCtx); dropped > 0 {
			log.Warn("webhook_notifications_dropped", zap.Int("count", dropped))
		}
		cancelDrain()
	}
	if orchestrator != nil {
		cancelWorkers()
		orchestrator.Wait()
	}
	if rdb != nil {
		rdb.Close()
	}

	log.Info("server_stopped")
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
