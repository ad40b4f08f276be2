package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-archiver/internal/weather"
	"github.com/i474232898/weather-archiver/internal/weather/openweather"
)

// RegisterRoutes wires one GET route per archive job into the Fiber app.
func RegisterRoutes(app *fiber.App, runner Runner, jobs []weather.Job, defaults []string) {
	for _, job := range jobs {
		job := job
		app.Get(job.Path, func(c *fiber.Ctx) error {
			present := c.Context().QueryArgs().Has("cities")
			cities, err := weather.ParseCities(c.Query("cities"), present, defaults)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			res, err := runner.Run(c.UserContext(), job, cities)
			if err != nil {
				return runError(err)
			}

			return c.JSON(res)
		})
	}
}

// runError maps a failed run onto an HTTP error.
func runError(err error) error {
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, openweather.ErrUnexpectedStatus), errors.Is(err, openweather.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
