package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/logger"
)

// ThresholdDetector is the name of the threshold rule.
const ThresholdDetector = "threshold"

// ThresholdRule alerts when more than Limit calls to a method reached the watched
// address within the trailing window ending at the tick's height.
type ThresholdRule struct {
	fetcher  client.TransactionFetcher
	cfg      domain.MonitorConfig
	selector domain.MethodSelector
	logger   logger.AppLogger
	metrics  Metrics
}

var _ Rule = (*ThresholdRule)(nil)

// NewThresholdRule creates a ThresholdRule. The config must name an address,
// a method signature, a recipient and a non-zero window.
func NewThresholdRule(
	fetcher client.TransactionFetcher,
	cfg domain.MonitorConfig,
	appLogger logger.AppLogger,
	metrics Metrics,
) (*ThresholdRule, error) {
	if fetcher == nil {
		return nil, errors.New("NewThresholdRule: fetcher is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewThresholdRule: appLogger is nil")
	}
	if err := cfg.ValidateForThreshold(); err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	selector := domain.NewMethodSelectorFromSignature(cfg.MethodSignature)
	return &ThresholdRule{
		fetcher:  fetcher,
		cfg:      cfg,
		selector: selector,
		logger: appLogger.With(
			logger.KeyDetector, ThresholdDetector,
			"address", cfg.WatchedAddress.String(),
			"selector", selector.String(),
		),
		metrics: metrics,
	}, nil
}

// Name returns the detector name.
func (r *ThresholdRule) Name() string {
	return ThresholdDetector
}

// OnTick counts matching calls in [height-window, height]. The comparison is strict.
func (r *ThresholdRule) OnTick(ctx context.Context, tick Tick) (*domain.Alert, error) {
	window := domain.TrailingWindow(tick.Height, r.cfg.Window)

	started := time.Now()
	txs, err := r.fetcher.FetchAll(ctx, r.cfg.WatchedAddress, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	r.metrics.TransactionsFetched(ThresholdDetector, len(txs), time.Since(started))

	var matching []domain.Transaction
	for _, tx := range txs {
		if tx.MethodSelector.Equals(r.selector) {
			matching = append(matching, tx)
		}
	}
	count := uint64(len(matching))

	r.logger.Debug("Window evaluated", "from", window.From.Value(), "to", window.To.Value(), "count", count, "limit", r.cfg.Limit)
	if count <= r.cfg.Limit {
		return nil, nil
	}

	alert := domain.NewAlert(ThresholdDetector, r.cfg.Recipient, tick.Height, fmt.Sprintf(
		"Warning! The %s you monitor may be in danger!\nResult: %d `%s` txs in blocks %s..%s, over your limit (%d)",
		r.cfg.WatchedAddress.String(), count, r.cfg.MethodSignature, window.From, window.To, r.cfg.Limit,
	))
	alert.TxHashes = domain.TransactionHashes(matching)
	return alert, nil
}
