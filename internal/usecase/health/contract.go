package health

import "context"

// StorePinger checks document store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks an upstream model provider.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
