package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"agripoultry/internal/config"
	"agripoultry/internal/http/handlers"
	applog "agripoultry/internal/log"
	"agripoultry/internal/metrics"
	"agripoultry/internal/notify"
	"agripoultry/internal/repos"
	"agripoultry/internal/services"
)

func main() {
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so every deferred close happens.
func run(cfg config.Config) error {
	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
			defer func() {
				log.SetOutput(os.Stderr)
				_ = f.Close()
			}()
		}
	}

	blobs, err := openBlobs(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer blobs.Close()

	notes := notify.NewCenter(cfg.NotifyTTL)
	defer notes.Close()
	reg := metrics.NewRegistry()

	dash, err := services.NewDashboard(repos.NewStateRepo(blobs), notes, reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine(),
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || p == "/metrics" || strings.HasPrefix(p, "/api/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, retry soon.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Warn(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	handlers.Register(app, handlers.NewDeps(dash, reg))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		applog.Info(nil, "server.shutdown", nil)
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func openBlobs(cfg config.Config) (repos.BlobStore, error) {
	if cfg.StoreBackend == config.BackendPebble {
		log.Printf("[store] pebble -> %s", cfg.PebbleDir)
		return repos.NewPebbleBlobs(cfg.PebbleDir)
	}
	log.Printf("[store] sqlite -> %s", cfg.DBDSN)
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	return repos.NewSQLiteBlobs(db), nil
}
