//go:generate mockgen -source=$GOFILE -destination=../../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
package client

import (
	"context"

	"sechelper/internal/core/domain"
)

// TransactionFetcher returns the normalized transactions touching an address in a block range.
type TransactionFetcher interface {
	// FetchAll returns direct transactions followed by internal transactions.
	// Either query failing fails the whole call.
	FetchAll(ctx context.Context, address domain.Address, blocks domain.BlockRange) ([]domain.Transaction, error)

	// Fetch returns the transactions of a single source.
	Fetch(
		ctx context.Context,
		source domain.TxSource,
		address domain.Address,
		blocks domain.BlockRange,
	) ([]domain.Transaction, error)
}
