package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/logger"
)

// ActivityDetector is the name of the activity rule.
const ActivityDetector = "activity"

// ActivityRule alerts on any transaction touching the watched address in the tick's block.
// Without a recipient it only logs each transaction.
type ActivityRule struct {
	fetcher client.TransactionFetcher
	cfg     domain.MonitorConfig
	logger  logger.AppLogger
	metrics Metrics
}

var _ Rule = (*ActivityRule)(nil)

// NewActivityRule creates an ActivityRule.
func NewActivityRule(
	fetcher client.TransactionFetcher,
	cfg domain.MonitorConfig,
	appLogger logger.AppLogger,
	metrics Metrics,
) (*ActivityRule, error) {
	if fetcher == nil {
		return nil, errors.New("NewActivityRule: fetcher is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewActivityRule: appLogger is nil")
	}
	if cfg.WatchedAddress.IsZero() {
		return nil, fmt.Errorf("%w: watched address is required", domain.ErrInvalidMonitorConfig)
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ActivityRule{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  appLogger.With(logger.KeyDetector, ActivityDetector, "address", cfg.WatchedAddress.String()),
		metrics: metrics,
	}, nil
}

// Name returns the detector name.
func (r *ActivityRule) Name() string {
	return ActivityDetector
}

// OnTick fetches the transactions of the tick's block.
func (r *ActivityRule) OnTick(ctx context.Context, tick Tick) (*domain.Alert, error) {
	started := time.Now()
	txs, err := r.fetcher.FetchAll(ctx, r.cfg.WatchedAddress, domain.SingleBlock(tick.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	r.metrics.TransactionsFetched(ActivityDetector, len(txs), time.Since(started))

	if len(txs) == 0 {
		return nil, nil
	}

	if !r.cfg.HasRecipient() {
		for _, tx := range txs {
			r.logger.Info("Transaction observed",
				logger.KeyHeight, tick.Height.Value(),
				"hash", tx.Hash.String(),
				"from", tx.From.String(),
				"to", tx.To.String(),
				"value", tx.Value.String(),
				"method", tx.MethodSelector.String(),
				"source", string(tx.Source),
			)
		}
		return nil, nil
	}

	hashes := domain.TransactionHashes(txs)
	alert := domain.NewAlert(ActivityDetector, r.cfg.Recipient, tick.Height, activityBody(r.cfg.WatchedAddress, hashes))
	alert.TxHashes = hashes
	return alert, nil
}

func activityBody(addr domain.Address, hashes []string) string {
	return fmt.Sprintf("Attention! The %s you monitor has action!\nTx hash: [%s]",
		addr.String(), strings.Join(hashes, ", "))
}
