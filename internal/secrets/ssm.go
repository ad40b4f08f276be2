package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/i474232898/weather-archiver/internal/weather"
)

// DefaultParameterName is the SSM parameter holding the OpenWeather key.
const DefaultParameterName = "OWAPIkey"

// ErrEmptySecret is returned when a secret resolves to an empty value.
var ErrEmptySecret = errors.New("secret is empty")

var (
	_ weather.SecretSource = (*SSM)(nil)
	_ weather.SecretSource = Static("")
)

// ParameterAPI is the subset of the SSM client used here.
type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSM reads the API key from Parameter Store on every call, decrypting
// SecureString values.
type SSM struct {
	api  ParameterAPI
	name string
}

func NewSSM(api ParameterAPI, name string) *SSM {
	if name == "" {
		name = DefaultParameterName
	}
	return &SSM{api: api, name: name}
}

func (s *SSM) APIKey(ctx context.Context) (string, error) {
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", s.name, err)
	}
	if out == nil || out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: parameter %s", ErrEmptySecret, s.name)
	}
	return aws.ToString(out.Parameter.Value), nil
}

// Static is a fixed API key, typically read from OPENWEATHER_API_KEY.
type Static string

func (s Static) APIKey(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: static api key", ErrEmptySecret)
	}
	return string(s), nil
}
