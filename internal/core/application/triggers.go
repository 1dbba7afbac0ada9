package application

import (
	"context"
	"fmt"
	"time"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
)

// BlockTrigger ticks once per block arrival of a live subscription.
type BlockTrigger struct {
	sub     client.BlockSubscription
	dropErr error
}

var _ Trigger = (*BlockTrigger)(nil)

// NewBlockTrigger opens a block subscription on provider.
func NewBlockTrigger(ctx context.Context, provider client.ChainDataProvider) (*BlockTrigger, error) {
	sub, err := provider.SubscribeBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to new blocks: %w", err)
	}
	return &BlockTrigger{sub: sub}, nil
}

// Next waits for the next block. A dropped subscription is an ErrConnection, reported
// only after every block delivered before the drop has been returned.
func (t *BlockTrigger) Next(ctx context.Context) (Tick, error) {
	if err := ctx.Err(); err != nil {
		return Tick{}, err
	}
	if tick, ok := t.buffered(); ok {
		return tick, nil
	}
	if t.dropErr != nil {
		return Tick{}, t.dropErr
	}

	select {
	case <-ctx.Done():
		return Tick{}, ctx.Err()
	case err, ok := <-t.sub.Err():
		if !ok || err == nil {
			err = fmt.Errorf("%w: block subscription closed", domain.ErrConnection)
		}
		t.dropErr = err
		if tick, ok := t.buffered(); ok {
			return tick, nil
		}
		return Tick{}, err
	case ev, ok := <-t.sub.Events():
		if !ok {
			return Tick{}, fmt.Errorf("%w: block subscription closed", domain.ErrConnection)
		}
		return Tick{Height: ev.Height}, nil
	}
}

// buffered returns an already delivered block without waiting.
func (t *BlockTrigger) buffered() (Tick, bool) {
	select {
	case ev, ok := <-t.sub.Events():
		if ok {
			return Tick{Height: ev.Height}, true
		}
	default:
	}
	return Tick{}, false
}

// Close unsubscribes.
func (t *BlockTrigger) Close() {
	t.sub.Unsubscribe()
}

// TimerTrigger ticks immediately and then every interval, at the node's latest height.
type TimerTrigger struct {
	provider client.ChainDataProvider
	interval time.Duration
	ticker   *time.Ticker
}

var _ Trigger = (*TimerTrigger)(nil)

// NewTimerTrigger creates a TimerTrigger. The interval must be positive.
func NewTimerTrigger(provider client.ChainDataProvider, interval time.Duration) (*TimerTrigger, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be greater than 0", domain.ErrInvalidMonitorConfig)
	}
	return &TimerTrigger{provider: provider, interval: interval}, nil
}

// Next returns at once on the first call, then on every ticker fire.
func (t *TimerTrigger) Next(ctx context.Context) (Tick, error) {
	if t.ticker == nil {
		t.ticker = time.NewTicker(t.interval)
	} else {
		select {
		case <-ctx.Done():
			return Tick{}, ctx.Err()
		case <-t.ticker.C:
		}
	}

	head, err := t.provider.LatestHeight(ctx)
	if err != nil {
		return Tick{}, fmt.Errorf("failed to get latest height: %w", err)
	}
	return Tick{Height: head}, nil
}

// Close stops the ticker.
func (t *TimerTrigger) Close() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
}
