package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"usersapi/config"
	"usersapi/internal/db"
	"usersapi/internal/handlers"
	"usersapi/internal/logging"
	"usersapi/internal/services"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived resource of the API process.
type App struct {
	cfg    *config.Config
	db     *gorm.DB
	redis  *redis.Client
	env    *handlers.Env
	log    logging.Logger
	server *http.Server
}

// NewApp connects to the database (and redis when configured) and assembles
// the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	gdb, err := db.NewDB(cfg.DSN)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			db.Close(gdb)
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info(ctx, "token denylist in redis", "addr", cfg.RedisAddr)
	} else {
		log.Warn(ctx, "REDIS_ADDR not set, token denylist kept in memory")
	}

	return newApp(cfg, gdb, rdb, log), nil
}

func newApp(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, log logging.Logger) *App {
	env := &handlers.Env{
		DB:         gdb,
		Tokens:     services.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Denylist:   services.NewDenylist(rdb),
		Log:        log,
		BcryptCost: cfg.BcryptCost,
	}
	router := NewRouter(env, Options{CORSOrigins: cfg.CORSOrigins, AllowSignup: cfg.AllowSignup})
	return &App{
		cfg:   cfg,
		db:    gdb,
		redis: rdb,
		env:   env,
		log:   log,
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "listening", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.server.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the database pool and the redis client.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, db.Close(a.db))
	return errors.Join(errs...)
}
