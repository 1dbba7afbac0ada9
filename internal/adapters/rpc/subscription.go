package rpc

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"

	"sechelper/internal/core/domain"
	"sechelper/internal/logger"
)

// subscription is the bounded stream handed to the core. The forwarder blocks
// when events is full; the node then queues and eventually drops the
// subscription, which surfaces as ErrConnection on errs.
type subscription[T any] struct {
	inner  ethereum.Subscription
	events chan T
	errs   chan error
	done   chan struct{}
	once   sync.Once
}

func newSubscription[T any](inner ethereum.Subscription, buffer int) *subscription[T] {
	return &subscription[T]{
		inner:  inner,
		events: make(chan T, buffer),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
}

func (s *subscription[T]) Events() <-chan T {
	return s.events
}

// Err delivers at most one error and is closed once the forwarder exits.
func (s *subscription[T]) Err() <-chan error {
	return s.errs
}

// Unsubscribe stops the forwarder and the node subscription.
func (s *subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.inner.Unsubscribe()
	})
}

func forward[In, Out any](
	ctx context.Context,
	s *subscription[Out],
	in <-chan In,
	convert func(In) (Out, error),
	name string,
	appLogger logger.AppLogger,
) {
	defer close(s.errs)

	for {
		select {
		case <-ctx.Done():
			s.Unsubscribe()
			return
		case <-s.done:
			return
		case err, ok := <-s.inner.Err():
			if !ok {
				return
			}
			s.errs <- fmt.Errorf("%w: %s subscription dropped: %v", domain.ErrConnection, name, err)
			return
		case raw := <-in:
			ev, err := convert(raw)
			if err != nil {
				appLogger.Warn("Skipping malformed notification", "subscription", name, logger.KeyError, err)
				continue
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			case <-ctx.Done():
				s.Unsubscribe()
				return
			}
		}
	}
}
