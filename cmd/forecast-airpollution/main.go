package main

import (
	"github.com/i474232898/weather-archiver/internal/function"
	"github.com/i474232898/weather-archiver/internal/weather"
)

func main() {
	function.Start(weather.ForecastAirPollution)
}
