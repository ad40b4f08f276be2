package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Archiver fetches upstream payloads for a list of cities and writes each
// one to the object store.
type Archiver struct {
	client  Client
	secrets SecretSource
	store   ObjectStore
	logger  *zap.Logger
	now     func() time.Time
}

// Option customizes an Archiver.
type Option func(*Archiver)

// WithClock overrides the clock used for object key timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		a.now = now
	}
}

// NewArchiver creates a new Archiver.
func NewArchiver(client Client, secrets SecretSource, store ObjectStore, logger *zap.Logger, opts ...Option) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Archiver{
		client:  client,
		secrets: secrets,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run archives one object per city for the given job. Cities are processed
// in order and the first error aborts the run; objects written before the
// failure are kept.
func (a *Archiver) Run(ctx context.Context, job Job, cities []string) (Result, error) {
	if len(cities) == 0 {
		return Result{}, ErrNoCities
	}
	if job.fetch == nil {
		return Result{}, fmt.Errorf("job %q has no fetch step", job.Name)
	}

	log := a.logger.With(
		zap.String("job", job.Name),
		zap.String("invocation_id", uuid.NewString()),
	)
	log.Debug("run started", zap.Strings("cities", cities))

	// One secret lookup per run, shared by every city.
	apiKey, err := a.secrets.APIKey(ctx)
	if err != nil {
		log.Error("api key lookup failed", zap.Error(err))
		return Result{}, fmt.Errorf("retrieve api key: %w", err)
	}

	for _, city := range cities {
		payload, err := job.fetch(ctx, a.client, city, apiKey)
		if err != nil {
			log.Error("fetch failed", zap.String("city", city), zap.Error(err))
			return Result{}, fmt.Errorf("%s: fetch %q: %w", job.Name, city, err)
		}

		key := ObjectKey(job.Domain, job.Kind, city, a.now())
		if err := a.store.Put(ctx, key, payload, ContentTypeJSON); err != nil {
			log.Error("store failed", zap.String("city", city), zap.String("key", key), zap.Error(err))
			return Result{}, fmt.Errorf("%s: store %q: %w", job.Name, key, err)
		}

		log.Info("archived", zap.String("city", city), zap.String("key", key), zap.Int("bytes", len(payload)))
	}

	// The result owns its slice; later changes by the caller do not leak in.
	done := make([]string, len(cities))
	copy(done, cities)

	return Result{
		Message: job.Message,
		Cities:  done,
	}, nil
}
