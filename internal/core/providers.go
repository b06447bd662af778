package core

import "context"

// WeatherProvider reports current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (string, error)
}

// KnowledgeProvider answers "tell me about X" lookups with a short summary.
type KnowledgeProvider interface {
	Summary(ctx context.Context, topic string) (string, error)
}

// SystemOps is the narrow seam to the host OS.
type SystemOps interface {
	OpenApplication(ctx context.Context, name string) error
	OpenURL(ctx context.Context, url string) error
	Status(ctx context.Context, metric string) (string, error)
}
