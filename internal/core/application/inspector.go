package application

import (
	"context"
	"errors"
	"fmt"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

// SourceAll selects both direct and internal transactions.
const SourceAll domain.TxSource = "all"

// Inspector answers one-shot questions about an address over a block range.
type Inspector struct {
	fetcher  client.TransactionFetcher
	registry repository.AddressRegistry
	logger   logger.AppLogger
}

// NewInspector creates an Inspector. The registry is only needed by InvokedMixingService.
func NewInspector(
	fetcher client.TransactionFetcher,
	registry repository.AddressRegistry,
	appLogger logger.AppLogger,
) (*Inspector, error) {
	if fetcher == nil {
		return nil, errors.New("NewInspector: fetcher is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewInspector: appLogger is nil")
	}
	return &Inspector{fetcher: fetcher, registry: registry, logger: appLogger}, nil
}

// Transactions returns the transactions of source touching address in blocks.
func (i *Inspector) Transactions(
	ctx context.Context,
	source domain.TxSource,
	address domain.Address,
	blocks domain.BlockRange,
) ([]domain.Transaction, error) {
	switch source {
	case SourceAll:
		return i.fetcher.FetchAll(ctx, address, blocks)
	case domain.SourceDirect, domain.SourceInternal:
		return i.fetcher.Fetch(ctx, source, address, blocks)
	default:
		return nil, fmt.Errorf("unsupported transaction source: %q", source)
	}
}

// InvokedMixingService reports whether any transaction of address in blocks has a
// mixing service address as sender or recipient.
func (i *Inspector) InvokedMixingService(
	ctx context.Context,
	address domain.Address,
	blocks domain.BlockRange,
) (bool, error) {
	if i.registry == nil {
		return false, errors.New("InvokedMixingService: registry is not configured")
	}
	if err := blocks.Validate(); err != nil {
		return false, err
	}

	mixers, err := i.registry.Classified(ctx, domain.CategoryMixingService)
	if err != nil {
		return false, fmt.Errorf("failed to load mixing service addresses: %w", err)
	}
	txs, err := i.fetcher.FetchAll(ctx, address, blocks)
	if err != nil {
		return false, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	for _, tx := range txs {
		for _, mixer := range mixers {
			if tx.Touches(mixer) {
				i.logger.Info("Mixing service interaction found", "address", address.String(), "mixer", mixer.String(), "hash", tx.Hash.String())
				return true, nil
			}
		}
	}
	return false, nil
}
