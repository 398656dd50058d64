// Package repository translates between serialized backend records and
// typed entities.
package repository

import "context"

// Repository defines the generic fetch contract for entity data access.
// It abstracts the data layer, allowing different implementations (e.g.,
// the simulated backend, a real network client) to be used
// interchangeably.
type Repository[T any] interface {
	// FetchAll retrieves the full collection in backend order.
	FetchAll(ctx context.Context) ([]T, error)

	// FetchByID retrieves the first entity with the given identifier.
	FetchByID(ctx context.Context, id int64) (T, error)
}
