package backend

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is the artificial latency applied to every fetch. It models
// a network round trip and is fixed and deterministic, never zero.
const DefaultDelay = 2 * time.Second

// Sleeper suspends the caller for the given duration. Injectable so tests
// can observe the latency contract without real sleeping.
type Sleeper func(d time.Duration)

// MemoryBackend serves an in-memory seed collection after a fixed delay.
// The seed is read-only: there are no create, update or delete operations.
type MemoryBackend struct {
	delay time.Duration
	sleep Sleeper
	seed  []json.RawMessage
	log   *zap.Logger
}

// Option configures a MemoryBackend during construction. Options return
// an error if validation fails.
type Option func(*MemoryBackend) error

// WithDelay overrides the artificial latency. The delay must be positive:
// a zero or negative delay would break the simulated-latency contract.
func WithDelay(d time.Duration) Option {
	return func(b *MemoryBackend) error {
		if d <= 0 {
			return errors.New("backend delay must be positive")
		}
		b.delay = d
		return nil
	}
}

// WithSleeper overrides how the backend suspends. Intended for tests.
func WithSleeper(s Sleeper) Option {
	return func(b *MemoryBackend) error {
		if s == nil {
			return errors.New("sleeper must not be nil")
		}
		b.sleep = s
		return nil
	}
}

// WithSeed replaces the default seed collection. Records are kept in the
// order given; that order is the mock table's insertion order.
func WithSeed(records ...json.RawMessage) Option {
	return func(b *MemoryBackend) error {
		b.seed = append([]json.RawMessage(nil), records...)
		return nil
	}
}

// NewMemoryBackend creates a backend over the default three-user seed.
func NewMemoryBackend(log *zap.Logger, opts ...Option) (*MemoryBackend, error) {
	b := &MemoryBackend{
		delay: DefaultDelay,
		sleep: time.Sleep,
		seed: []json.RawMessage{
			json.RawMessage(`{"id":1,"name":"Alice","email":"alice@mail.com"}`),
			json.RawMessage(`{"id":2,"name":"Bob","email":"bob@mail.com"}`),
			json.RawMessage(`{"id":3,"name":"Charlie","email":"charlie@mail.com"}`),
		},
		log: log,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Delay reports the configured artificial latency.
func (b *MemoryBackend) Delay() time.Duration {
	return b.delay
}

// FetchSerializedCollection returns a snapshot of the seed as a JSON
// array, after suspending for the configured delay. It never fails.
func (b *MemoryBackend) FetchSerializedCollection(ctx context.Context) ([]byte, error) {
	b.sleep(b.delay)

	data, err := json.Marshal(b.seed)
	if err != nil {
		// The seed is initialized from valid raw JSON, so this is unreachable.
		return nil, err
	}

	b.log.Debug("served seed snapshot",
		zap.Int("records", len(b.seed)),
		zap.Duration("delay", b.delay),
	)
	return data, nil
}
