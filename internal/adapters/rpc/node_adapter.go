// Package rpc implements the chain data provider over a go-ethereum websocket client.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/logger"
)

// EthClient is the subset of *ethclient.Client the adapter needs.
type EthClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)
	SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
	Close()
}

var _ EthClient = (*ethclient.Client)(nil)

// NodeAdapter implements client.ChainDataProvider on top of an EthClient.
type NodeAdapter struct {
	client         EthClient
	requestTimeout time.Duration
	buffer         int
	logger         logger.AppLogger
}

// Compile-time check to ensure NodeAdapter implements client.ChainDataProvider
var _ client.ChainDataProvider = (*NodeAdapter)(nil)

// Dial connects to the node configured in cfg.
func Dial(ctx context.Context, cfg config.ETHClientConfig, appLogger logger.AppLogger) (*NodeAdapter, error) {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ethClient, err := ethclient.DialContext(dialCtx, cfg.NodeURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial %s: %v", domain.ErrConnection, cfg.NodeURL, err)
	}
	return NewNodeAdapter(ethClient, timeout, cfg.SubscriptionBuffer, appLogger), nil
}

// NewNodeAdapter wraps an EthClient. Non-positive values fall back to the config defaults.
func NewNodeAdapter(ethClient EthClient, requestTimeout time.Duration, buffer int, appLogger logger.AppLogger) *NodeAdapter {
	if requestTimeout <= 0 {
		requestTimeout = config.DefaultEthRequestTimeoutSeconds * time.Second
	}
	if buffer <= 0 {
		buffer = config.DefaultEthSubscriptionBuffer
	}
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &NodeAdapter{
		client:         ethClient,
		requestTimeout: requestTimeout,
		buffer:         buffer,
		logger:         appLogger.With(logger.KeyComponent, "rpc"),
	}
}

// LatestHeight fetches the number of the most recent block, bounded by the request timeout.
func (a *NodeAdapter) LatestHeight(ctx context.Context) (domain.BlockHeight, error) {
	reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	number, err := a.client.BlockNumber(reqCtx)
	if err != nil {
		if ctx.Err() != nil {
			return domain.BlockHeight{}, ctx.Err()
		}
		return domain.BlockHeight{}, fmt.Errorf("%w: eth_blockNumber failed: %v", domain.ErrConnection, err)
	}
	return domain.BlockHeightOf(number), nil
}

// SubscribeBlocks opens a newHeads subscription.
func (a *NodeAdapter) SubscribeBlocks(ctx context.Context) (client.BlockSubscription, error) {
	headers := make(chan *types.Header, a.buffer)

	reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()
	inner, err := a.client.SubscribeNewHead(reqCtx, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: newHeads subscription failed: %v", domain.ErrConnection, err)
	}

	sub := newSubscription[domain.BlockArrivalEvent](inner, a.buffer)
	go forward[*types.Header, domain.BlockArrivalEvent](ctx, sub, headers, headerToEvent, "newHeads", a.logger)
	a.logger.Info("Subscribed to new blocks")
	return sub, nil
}

// SubscribeLogs opens a logs subscription for one contract and topic0.
func (a *NodeAdapter) SubscribeLogs(ctx context.Context, filter domain.LogFilter) (client.LogSubscription, error) {
	logs := make(chan types.Log, a.buffer)

	reqCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()
	inner, err := a.client.SubscribeFilterLogs(reqCtx, toFilterQuery(filter), logs)
	if err != nil {
		return nil, fmt.Errorf("%w: logs subscription failed: %v", domain.ErrConnection, err)
	}

	sub := newSubscription[domain.LogEvent](inner, a.buffer)
	go forward[types.Log, domain.LogEvent](ctx, sub, logs, logToEvent, "logs", a.logger)
	a.logger.Info("Subscribed to logs", "address", filter.Address.String(), "topic", filter.Topic.Hex())
	return sub, nil
}

// Close closes the underlying connection.
func (a *NodeAdapter) Close() {
	a.client.Close()
}

func toFilterQuery(filter domain.LogFilter) ethereum.FilterQuery {
	q := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(filter.FromBlock.Value()),
	}
	if !filter.Address.IsZero() {
		q.Addresses = []common.Address{filter.Address.Common()}
	}
	if filter.Topic != (common.Hash{}) {
		q.Topics = [][]common.Hash{{filter.Topic}}
	}
	return q
}

var errMissingNumber = errors.New("header without number")

func headerToEvent(h *types.Header) (domain.BlockArrivalEvent, error) {
	if h == nil || h.Number == nil {
		return domain.BlockArrivalEvent{}, errMissingNumber
	}
	if !h.Number.IsUint64() {
		return domain.BlockArrivalEvent{}, fmt.Errorf("header number out of range: %s", h.Number)
	}
	return domain.BlockArrivalEvent{Height: domain.BlockHeightOf(h.Number.Uint64())}, nil
}

func logToEvent(l types.Log) (domain.LogEvent, error) {
	addr, err := domain.NewAddress(l.Address.Hex())
	if err != nil {
		return domain.LogEvent{}, err
	}
	return domain.LogEvent{
		BlockNumber: domain.BlockHeightOf(l.BlockNumber),
		TxHash:      l.TxHash.Hex(),
		Address:     addr,
		Topics:      l.Topics,
		Data:        l.Data,
	}, nil
}
