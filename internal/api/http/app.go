// Package httpapi exposes the archive jobs over HTTP, mirroring the API
// Gateway routes of the Lambda deployment.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/weather"
)

// Runner runs an archive job for a list of cities.
type Runner interface {
	Run(ctx context.Context, job weather.Job, cities []string) (weather.Result, error)
}

// NewApp returns a Fiber app with the central error handler, panic
// recovery, request logging and a health endpoint.
func NewApp(logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-archiver",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Runs call the upstream once or twice per city.
		WriteTimeout: 60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-archiver",
		})
	})

	return app
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
			logger.Warn("http request", fields...)
		} else {
			logger.Info("http request", fields...)
		}
		return err
	}
}
