// Package backend provides the simulated remote data source. It stands in
// for a network client: it serves a fixed, insertion-ordered collection of
// serialized user records after an artificial latency.
package backend

import "context"

// Backend defines the interface for the remote data source. A real
// implementation would issue a network call and is expected to signal
// transport errors; the repository layer translates those into fetch
// failures.
type Backend interface {
	// FetchSerializedCollection returns the full collection as a JSON
	// array of records.
	FetchSerializedCollection(ctx context.Context) ([]byte, error)
}
