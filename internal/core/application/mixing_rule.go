package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

// MixingDetector is the name of the mixing service rule.
const MixingDetector = "mixing"

// MixingServiceRule records the sender of every transaction touching a known
// mixing service address as a potential hacker. It never alerts.
type MixingServiceRule struct {
	fetcher  client.TransactionFetcher
	registry repository.AddressRegistry
	mixers   []domain.Address
	logger   logger.AppLogger
	metrics  Metrics
}

var _ Rule = (*MixingServiceRule)(nil)

// NewMixingServiceRule creates a MixingServiceRule. The mixing service set is read
// once here and not refreshed.
func NewMixingServiceRule(
	ctx context.Context,
	fetcher client.TransactionFetcher,
	registry repository.AddressRegistry,
	appLogger logger.AppLogger,
	metrics Metrics,
) (*MixingServiceRule, error) {
	if fetcher == nil {
		return nil, errors.New("NewMixingServiceRule: fetcher is nil")
	}
	if registry == nil {
		return nil, errors.New("NewMixingServiceRule: registry is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewMixingServiceRule: appLogger is nil")
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}

	mixers, err := registry.Classified(ctx, domain.CategoryMixingService)
	if err != nil {
		return nil, fmt.Errorf("failed to load mixing service addresses: %w", err)
	}

	ruleLogger := appLogger.With(logger.KeyDetector, MixingDetector)
	ruleLogger.Info("Mixing service addresses loaded", "count", len(mixers))

	return &MixingServiceRule{
		fetcher:  fetcher,
		registry: registry,
		mixers:   mixers,
		logger:   ruleLogger,
		metrics:  metrics,
	}, nil
}

// Name returns the detector name.
func (r *MixingServiceRule) Name() string {
	return MixingDetector
}

// OnTick scans the tick's block for every mixing service address.
func (r *MixingServiceRule) OnTick(ctx context.Context, tick Tick) (*domain.Alert, error) {
	blocks := domain.SingleBlock(tick.Height)
	for _, mixer := range r.mixers {
		started := time.Now()
		txs, err := r.fetcher.FetchAll(ctx, mixer, blocks)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions of %s: %w", mixer, err)
		}
		r.metrics.TransactionsFetched(MixingDetector, len(txs), time.Since(started))

		for _, tx := range txs {
			if err := r.registry.RecordPotentialHacker(ctx, tx.From); err != nil {
				return nil, fmt.Errorf("failed to record potential hacker %s: %w", tx.From, err)
			}
			r.metrics.PotentialHackerRecorded()
			r.logger.Info("Potential hacker recorded",
				logger.KeyHeight, tick.Height.Value(),
				"mixer", mixer.String(),
				"sender", tx.From.String(),
				"hash", tx.Hash.String(),
			)
		}
	}
	return nil, nil
}
