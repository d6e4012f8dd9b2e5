package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/faideclothing/faide-store/internal/cart"
	"github.com/faideclothing/faide-store/internal/catalog"
	"github.com/faideclothing/faide-store/service"
	"github.com/faideclothing/faide-store/storage"
	"github.com/faideclothing/faide-store/views"
)

func main() {
	// slog is configured in slog.go via init()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is the source of truth for products; refuse to start
	// without it
	cat, err := catalog.NewLoader(config.Catalog.Source).Load(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "source", config.Catalog.Source, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", len(cat.Products), "lookbook", len(cat.Lookbook))

	snapshots, cleanup, err := newSnapshotStore(config)
	if err != nil {
		slog.Error("failed to initialize cart storage", "backend", config.Cart.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	renderer, err := views.NewRenderer()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Custom slog request middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"ip", c.RealIP(),
			)

			return err
		}
	})

	// Security headers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			c.Response().Header().Set("X-Content-Type-Options", "nosniff")
			c.Response().Header().Set("X-Frame-Options", "DENY")
			return next(c)
		}
	})

	svc := service.New(config, cat, snapshots)
	svc.RegisterRoutes(e)

	addr := fmt.Sprintf(":%s", config.Port)

	slog.Info("FAIDE store starting",
		"url", fmt.Sprintf("http://localhost:%s", config.Port),
		"port", config.Port,
		"environment", config.Environment,
		"cart_backend", config.Cart.Backend,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newSnapshotStore picks the cart persistence backend. SQLite is the default;
// Redis is for deployments that already run one.
func newSnapshotStore(config *service.Config) (cart.SnapshotStore, func(), error) {
	switch config.Cart.Backend {
	case "redis":
		store, err := storage.NewRedisSnapshots(config.Redis.Addr)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close redis connection", "error", err)
			}
		}, nil
	default:
		db, err := storage.New(config.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db.Snapshots(), func() {
			if err := db.Close(); err != nil {
				slog.Warn("failed to close database", "error", err)
			}
		}, nil
	}
}
