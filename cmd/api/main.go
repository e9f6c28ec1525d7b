// @title Users API
// @version 1.0
// @description User records with bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"usersapi/config"
	"usersapi/internal/logging"
	"usersapi/internal/server"
)

func main() {
	// 1. config from .env / environment
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateAPI()
	}
	if err != nil {
		logging.New(os.Stderr, "error").Error(context.Background(), "config load failed", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. database, redis, router
	app, err := server.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error(context.Background(), "close failed", "error", err)
		}
	}()

	// 3. serve until SIGINT/SIGTERM
	if err := app.Run(ctx); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		return
	}
	log.Info(context.Background(), "server stopped")
}
