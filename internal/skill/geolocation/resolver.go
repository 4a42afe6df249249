package geolocation

import "context"

// Resolver is the geolocation capability consumed by the response builder.
// Implementations return skill errors.ErrLocationNotFound for both
// "no match" and lookup failure; the core does not distinguish them.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*Geolocation, error)
}
