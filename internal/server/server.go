// Package server exposes the collection qualifier plugin over HTTP so an
// ARO host can discover and invoke it. The core stays pure; this adapter
// only moves textual documents in and out.
package server

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	collection "github.com/arolang/plugin-go-collection"
	"github.com/arolang/plugin-go-collection/internal/config"
)

const requestIDHeader = "X-Request-Id"

// New builds the fiber app with all plugin routes wired.
func New(cfg *config.Config, log *zap.Logger) *fiber.App {
	fiberCfg := fiber.Config{
		DisableStartupMessage: true,
		ServerHeader:          "ARO-Plugin-Collection",
		AppName:               collection.PluginName + " v" + collection.PluginVersion,
	}
	if cfg.MaxInputBytes > 0 {
		fiberCfg.BodyLimit = cfg.MaxInputBytes
	}
	app := fiber.New(fiberCfg)

	app.Use(recover.New())
	app.Use(requestLogger(log, cfg.Debug))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"plugin":  collection.PluginName,
			"version": collection.PluginVersion,
		})
	})

	app.Get("/aro/plugin/info", handleInfo)
	app.Post("/aro/plugin/qualifier/:name", handleQualifier(cfg))
	app.Post("/aro/plugin/execute/:name", handleExecute)

	return app
}

// Start runs the adapter until the listener stops or the process receives
// an interrupt.
func Start(cfg *config.Config, log *zap.Logger) error {
	app := New(cfg, log)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("plugin adapter listening",
		zap.String("addr", cfg.Addr()),
		zap.Int("max_input_bytes", cfg.MaxInputBytes))
	return app.Listen(cfg.Addr())
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(log *zap.Logger, debug bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)

		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if debug {
			log.Debug("request", fields...)
		} else {
			log.Info("request", fields...)
		}
		return err
	}
}

func handleInfo(c *fiber.Ctx) error {
	data, err := collection.PluginInfo()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "manifest unavailable: " + err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// handleQualifier runs a qualifier against the request body. Evaluation
// failures stay in-band as {"error":...} documents with status 200, matching
// the plugin ABI; only transport-level problems use HTTP error codes.
func handleQualifier(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if cfg.MaxInputBytes > 0 && len(body) > cfg.MaxInputBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "input document too large",
			})
		}
		if len(body) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "empty input document",
			})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(collection.Evaluate(c.Params("name"), body))
	}
}

func handleExecute(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(collection.ExecuteAction(c.Params("name"), c.Body()))
}
