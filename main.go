package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/recipe-planner/internal/api"
	"github.com/vladimiradmaev/recipe-planner/internal/bot"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/state"
	"github.com/vladimiradmaev/recipe-planner/internal/config"
	"github.com/vladimiradmaev/recipe-planner/internal/interfaces"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := logger.InitWithConfig(cfg.Logger.LoggerSettings()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	if envErr != nil {
		logger.Warn(".env file not found")
	}
	logger.Info("Starting Recipe Planner...", "storage", cfg.Storage)

	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	svc := interfaces.NewServices(store)
	logger.Info("Services initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Logger.LoggerSettings().Level != logger.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(svc, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped with error", "error", err)
			stop()
		}
	}()

	if cfg.TelegramToken != "" {
		states, closeStates := newStateManager(cfg)
		defer closeStates()

		telegramBot, err := bot.NewBot(cfg.TelegramToken, svc, states)
		if err != nil {
			logger.Fatal("Failed to create bot", "error", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot stopped with error", "error", err)
			}
		}()
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	wg.Wait()
}

// newStateManager prefers Redis so conversations survive restarts
func newStateManager(cfg *config.Config) (state.StateManager, func()) {
	if cfg.Redis.Addr == "" {
		return state.NewManager(), func() {}
	}
	redisStates, err := state.NewRedisManager(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory bot state", "error", err)
		return state.NewManager(), func() {}
	}
	logger.Info("Bot state stored in Redis", "addr", cfg.Redis.Addr)
	return redisStates, func() { _ = redisStates.Close() }
}
