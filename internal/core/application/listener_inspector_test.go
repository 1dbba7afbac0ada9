package application_test

import (
	"context"
	"fmt"
	"testing"

	"sechelper/internal/core/application"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/mocks/mock_client"
	"sechelper/internal/core/mocks/mock_notifier"
	"sechelper/internal/core/mocks/mock_repository"
	"sechelper/internal/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const transferEvent = "Transfer(address,address,uint256)"

func TestEventListener_Run(t *testing.T) {
	ctx := context.Background()
	token := mustAddress(t, watchedAddr)
	head := domain.BlockHeightOf(900)

	sub := &fakeLogSub{events: make(chan domain.LogEvent, 1), errs: make(chan error, 1)}
	sub.events <- domain.LogEvent{
		BlockNumber: domain.BlockHeightOf(901),
		TxHash:      fmt.Sprintf("0x%064x", 9),
		Address:     token,
		Topics:      []common.Hash{domain.EventTopic(transferEvent)},
		Data:        common.LeftPadBytes([]byte{0x01, 0x00}, 32),
	}
	close(sub.events)

	provider := mock_client.NewChainDataProvider(t)
	provider.On("LatestHeight", ctx).Return(head, nil).Once()
	provider.On("SubscribeLogs", ctx, domain.LogFilter{
		Address:   token,
		Topic:     domain.EventTopic(transferEvent),
		FromBlock: head,
	}).Return(sub, nil).Once()

	sink := mock_notifier.NewAlertSink(t)
	sink.On("Send", ctx, mock.MatchedBy(func(a domain.Alert) bool {
		return a.Detector == application.EventDetector && a.Height.Value() == 901
	})).Return(nil).Once()

	metrics := &recordingMetrics{}
	listener, err := application.NewEventListener(provider, sink, token, transferEvent, "ops@example.com", logger.NewDiscardLogger(), metrics)
	require.NoError(t, err)

	err = listener.Run(ctx)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.True(t, sub.closed)
	assert.Equal(t, 1, metrics.sent)
}

func TestEventListener_LogOnlyWithoutRecipient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	token := mustAddress(t, watchedAddr)

	sub := &fakeLogSub{events: make(chan domain.LogEvent), errs: make(chan error, 1)}
	provider := mock_client.NewChainDataProvider(t)
	provider.On("LatestHeight", ctx).Return(domain.BlockHeightOf(1), nil).Once()
	provider.On("SubscribeLogs", ctx, mock.Anything).Return(sub, nil).Once()

	listener, err := application.NewEventListener(provider, mock_notifier.NewAlertSink(t), token, transferEvent, "", logger.NewDiscardLogger(), nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()
	sub.events <- domain.LogEvent{BlockNumber: domain.BlockHeightOf(2), Address: token}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestInspector_Transactions(t *testing.T) {
	ctx := context.Background()
	addr := mustAddress(t, watchedAddr)
	blocks := domain.BlockRange{From: domain.BlockHeightOf(10), To: domain.BlockHeightOf(20)}
	tx := makeTx(t, 1, senderAddr, watchedAddr, domain.MethodSelector{})

	fetcher := mock_client.NewTransactionFetcher(t)
	fetcher.On("FetchAll", ctx, addr, blocks).Return([]domain.Transaction{tx}, nil).Once()
	fetcher.On("Fetch", ctx, domain.SourceInternal, addr, blocks).Return(nil, nil).Once()

	inspector, err := application.NewInspector(fetcher, nil, logger.NewDiscardLogger())
	require.NoError(t, err)

	txs, err := inspector.Transactions(ctx, application.SourceAll, addr, blocks)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	txs, err = inspector.Transactions(ctx, domain.SourceInternal, addr, blocks)
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = inspector.Transactions(ctx, "bogus", addr, blocks)
	assert.Error(t, err)
}

func TestInspector_InvokedMixingService(t *testing.T) {
	ctx := context.Background()
	addr := mustAddress(t, senderAddr)
	blocks := domain.BlockRange{From: domain.BlockHeightOf(10), To: domain.BlockHeightOf(20)}
	mixer := mustAddress(t, mixerAddr)

	testCases := []struct {
		name string
		txs  []domain.Transaction
		want bool
	}{
		{name: "sent to mixer", txs: []domain.Transaction{makeTx(t, 1, senderAddr, mixerAddr, domain.MethodSelector{})}, want: true},
		{name: "received from mixer", txs: []domain.Transaction{makeTx(t, 2, mixerAddr, senderAddr, domain.MethodSelector{})}, want: true},
		{name: "unrelated counterparty", txs: []domain.Transaction{makeTx(t, 3, senderAddr, watchedAddr, domain.MethodSelector{})}, want: false},
		{name: "no transactions", txs: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := mock_repository.NewAddressRegistry(t)
			registry.On("Classified", ctx, domain.CategoryMixingService).Return([]domain.Address{mixer}, nil).Once()
			fetcher := mock_client.NewTransactionFetcher(t)
			fetcher.On("FetchAll", ctx, addr, blocks).Return(tc.txs, nil).Once()

			inspector, err := application.NewInspector(fetcher, registry, logger.NewDiscardLogger())
			require.NoError(t, err)

			got, err := inspector.InvokedMixingService(ctx, addr, blocks)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInspector_InvokedMixingService_InvalidRange(t *testing.T) {
	inspector, err := application.NewInspector(mock_client.NewTransactionFetcher(t), mock_repository.NewAddressRegistry(t), logger.NewDiscardLogger())
	require.NoError(t, err)

	_, err = inspector.InvokedMixingService(context.Background(), mustAddress(t, senderAddr),
		domain.BlockRange{From: domain.BlockHeightOf(20), To: domain.BlockHeightOf(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidBlockRange)
}
