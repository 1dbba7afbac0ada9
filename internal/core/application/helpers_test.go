package application_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"sechelper/internal/core/domain"

	"github.com/stretchr/testify/require"
)

const (
	watchedAddr = "0x1111111111111111111111111111111111111111"
	senderAddr  = "0x2222222222222222222222222222222222222222"
	mixerAddr   = "0x3333333333333333333333333333333333333333"
)

func mustAddress(t *testing.T, s string) domain.Address {
	t.Helper()
	addr, err := domain.NewAddress(s)
	require.NoError(t, err)
	return addr
}

func makeTx(t *testing.T, n int, from, to string, selector domain.MethodSelector) domain.Transaction {
	t.Helper()
	hash, err := domain.NewTransactionHash(fmt.Sprintf("0x%064x", n))
	require.NoError(t, err)
	value, err := domain.NewWeiValue("1000")
	require.NoError(t, err)
	return domain.Transaction{
		Hash:           hash,
		From:           mustAddress(t, from),
		To:             mustAddress(t, to),
		Value:          value,
		MethodSelector: selector,
		Source:         domain.SourceDirect,
	}
}

type fakeBlockSub struct {
	events chan domain.BlockArrivalEvent
	errs   chan error
	once   sync.Once
	closed bool
}

func newFakeBlockSub(heights ...uint64) *fakeBlockSub {
	s := &fakeBlockSub{
		events: make(chan domain.BlockArrivalEvent, len(heights)),
		errs:   make(chan error, 1),
	}
	for _, h := range heights {
		s.events <- domain.BlockArrivalEvent{Height: domain.BlockHeightOf(h)}
	}
	return s
}

func (s *fakeBlockSub) Events() <-chan domain.BlockArrivalEvent { return s.events }
func (s *fakeBlockSub) Err() <-chan error                       { return s.errs }
func (s *fakeBlockSub) Unsubscribe()                            { s.once.Do(func() { s.closed = true }) }

type fakeLogSub struct {
	events chan domain.LogEvent
	errs   chan error
	closed bool
}

func (s *fakeLogSub) Events() <-chan domain.LogEvent { return s.events }
func (s *fakeLogSub) Err() <-chan error              { return s.errs }
func (s *fakeLogSub) Unsubscribe()                   { s.closed = true }

type recordingMetrics struct {
	mu       sync.Mutex
	ticks    int
	sent     int
	failed   int
	recorded int
}

func (m *recordingMetrics) TickEvaluated(string, domain.BlockHeight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks++
}

func (m *recordingMetrics) AlertSent(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
}

func (m *recordingMetrics) DeliveryFailed(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func (m *recordingMetrics) TransactionsFetched(string, int, time.Duration) {}

func (m *recordingMetrics) PotentialHackerRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded++
}
