package main

import (
	"context"

	"go-chi-calculator/internal/calcapi"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context, store *session.Store) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calcapi.InitMetrics(); err != nil {
		return nil, err
	}

	if err := calcapi.ObserveSessions(store); err != nil {
		return nil, err
	}

	return shutdown, nil
}
