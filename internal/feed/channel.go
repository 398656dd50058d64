// Package feed provides a broadcast stream of live user updates. It is a
// zero-history, multi-subscriber channel: every publish fans out
// synchronously to the subscribers active at that moment, and nothing is
// replayed to late joiners.
package feed

import (
	stderrors "errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/pkg/errors"
)

// Handler receives each published user.
type Handler func(domain.User)

type subscriber struct {
	id      string
	handler Handler
}

// Channel is a broadcast stream of user updates. A Channel moves one way
// through its lifecycle: Open, then Closed after Close; a closed Channel
// never reopens.
type Channel struct {
	mu     sync.Mutex
	subs   []subscriber
	closed bool
	log    *zap.Logger
}

// NewChannel creates an open update channel with no subscribers.
func NewChannel(log *zap.Logger) *Channel {
	return &Channel{log: log}
}

// Subscription is a listener's membership in the channel's delivery list.
type Subscription struct {
	id string
	ch *Channel
}

// ID returns the subscription's unique handle.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes the listener from the channel's delivery list.
// Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.ch.remove(s.id)
}

// Subscribe registers a handler for future publishes. The handler only
// observes users published after this call; earlier events are never
// replayed. Fails with a ChannelClosedError once the channel is closed.
func (c *Channel) Subscribe(h Handler) (*Subscription, error) {
	if h == nil {
		return nil, stderrors.New("handler must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.NewChannelClosedError("subscribe")
	}

	sub := subscriber{id: uuid.NewString(), handler: h}
	c.subs = append(c.subs, sub)

	c.log.Debug("subscriber registered",
		zap.String("subscription_id", sub.id),
		zap.Int("subscribers", len(c.subs)),
	)
	return &Subscription{id: sub.id, ch: c}, nil
}

// Publish delivers u synchronously to every active subscriber, in
// subscription order, each exactly once. With no subscribers the user is
// silently dropped. Fails with a ChannelClosedError once the channel is
// closed.
func (c *Channel) Publish(u domain.User) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.NewChannelClosedError("publish")
	}
	// Snapshot under lock so handlers may subscribe or unsubscribe
	// without deadlocking; those changes take effect on the next publish.
	subs := append([]subscriber(nil), c.subs...)
	c.mu.Unlock()

	if len(subs) == 0 {
		c.log.Debug("publish with no subscribers, dropping", zap.Int64("user_id", u.ID))
		return nil
	}

	for _, s := range subs {
		s.handler(u)
	}

	c.log.Debug("published user update",
		zap.Int64("user_id", u.ID),
		zap.Int("subscribers", len(subs)),
	)
	return nil
}

// Close disposes the channel. After Close, Publish and Subscribe fail
// with a ChannelClosedError. Close itself is idempotent: closing an
// already closed channel is a no-op.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	c.subs = nil
	c.log.Info("update channel closed")
	return nil
}

func (c *Channel) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			c.log.Debug("subscriber removed", zap.String("subscription_id", id))
			return
		}
	}
}
