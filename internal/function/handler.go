// Package function adapts archive jobs to the AWS Lambda runtime.
package function

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/weather"
)

// Runner runs an archive job for a list of cities.
type Runner interface {
	Run(ctx context.Context, job weather.Job, cities []string) (weather.Result, error)
}

// Handler is the Lambda entry point signature for API Gateway HTTP API
// (payload v2) and scheduled invocations.
type Handler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler returns a Handler running job. Scheduled EventBridge events
// decode into an empty request, so they archive the default cities.
// Run failures are returned as the handler error and surface as a
// platform-level failure.
func NewHandler(runner Runner, job weather.Job, defaults []string, logger *zap.Logger) Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		raw, present := req.QueryStringParameters["cities"]
		cities, err := weather.ParseCities(raw, present, defaults)
		if err != nil {
			logger.Warn("rejected request", zap.String("job", job.Name), zap.Error(err))
			return jsonResponse(http.StatusBadRequest, errorBody{Error: err.Error()})
		}

		res, err := runner.Run(ctx, job, cities)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		return jsonResponse(http.StatusOK, res)
	}
}

func jsonResponse(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": weather.ContentTypeJSON},
		Body:       string(body),
	}, nil
}
