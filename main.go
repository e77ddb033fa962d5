package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brokerage-dashboard-service/internal/brokerage"
	"brokerage-dashboard-service/internal/bulkops"
	"brokerage-dashboard-service/internal/config"
	httpapi "brokerage-dashboard-service/internal/http"
	"brokerage-dashboard-service/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	var api brokerage.API
	if cfg.DemoMode {
		log.Info("demo mode enabled; serving fixture data")
		api = brokerage.NewDemo()
	} else {
		log.Info("upstream brokerage api configured", zap.String("base", cfg.BrokerageAPIBaseURL))
		api = brokerage.NewClient(cfg.BrokerageAPIBaseURL, cfg.BrokerageAPITimeout)
	}

	var sessions bulkops.Store
	if cfg.RedisAddr != "" {
		redisStore := bulkops.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err := redisStore.Ping(ctx); err != nil {
			if cfg.Env == "production" {
				log.Fatal("redis connection failed", zap.Error(err))
			}
			log.Warn("redis connection failed; falling back to in-memory sessions", zap.Error(err))
			_ = redisStore.Close()
			sessions = bulkops.NewMemoryStore(cfg.SessionTTL)
		} else {
			log.Info("redis sessions enabled", zap.String("addr", cfg.RedisAddr))
			sessions = redisStore
			defer redisStore.Close()
		}
	} else {
		sessions = bulkops.NewMemoryStore(cfg.SessionTTL)
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(api, sessions, log, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("dashboard api ready", zap.String("base", "/api"))
		log.Info("dashboard gateway listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
