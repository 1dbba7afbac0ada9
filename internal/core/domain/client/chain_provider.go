// Package client defines interfaces for external data providers: the chain node and the block explorer.
//
//go:generate mockgen -source=$GOFILE -destination=../../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
package client

import (
	"context"

	"sechelper/internal/core/domain"
)

// BlockSubscription is a live, non-restartable stream of block arrivals.
type BlockSubscription interface {
	// Events delivers one event per new chain head, in order.
	Events() <-chan domain.BlockArrivalEvent

	// Err delivers at most one error when the stream is dropped. It is closed on Unsubscribe.
	Err() <-chan error

	// Unsubscribe tears the stream down. It is safe to call more than once.
	Unsubscribe()
}

// LogSubscription is a live stream of contract logs matching a filter.
type LogSubscription interface {
	// Events delivers matching logs in arrival order.
	Events() <-chan domain.LogEvent

	// Err delivers at most one error when the stream is dropped.
	Err() <-chan error

	// Unsubscribe tears the stream down.
	Unsubscribe()
}

// ChainDataProvider supplies chain head information from a node.
type ChainDataProvider interface {
	// LatestHeight returns the highest block known to the node.
	LatestHeight(ctx context.Context) (domain.BlockHeight, error)

	// SubscribeBlocks opens a block-arrival stream.
	SubscribeBlocks(ctx context.Context) (BlockSubscription, error)

	// SubscribeLogs opens a contract log stream.
	SubscribeLogs(ctx context.Context, filter domain.LogFilter) (LogSubscription, error)
}
