package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"sechelper/internal/adapters/storage/memory/registry"
	"sechelper/internal/config"
	"sechelper/internal/core/application"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/mocks/mock_client"
	"sechelper/internal/logger"
)

const testAddress = "0x1111111111111111111111111111111111111111"

func commandContext(t *testing.T, cmd cli.Command, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	set.SetOutput(io.Discard)
	for _, f := range cmd.Flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(newApp(), set, nil)
}

func assertUsageError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err), "error %v", err)
}

func TestActivityArgs(t *testing.T) {
	cfg, err := activityArgs(commandContext(t, activityCommand, "--address", testAddress, "--recipient", "ops@example.com"))
	require.NoError(t, err)
	assert.Equal(t, testAddress, cfg.WatchedAddress.String())
	assert.Equal(t, "ops@example.com", cfg.Recipient)

	cfg, err = activityArgs(commandContext(t, activityCommand, "--address", testAddress))
	require.NoError(t, err)
	assert.False(t, cfg.HasRecipient())

	_, err = activityArgs(commandContext(t, activityCommand))
	assertUsageError(t, err)

	_, err = activityArgs(commandContext(t, activityCommand, "--address", "0x123"))
	assertUsageError(t, err)
}

func TestThresholdArgs(t *testing.T) {
	policy := config.Default().Monitor
	full := []string{
		"--address", testAddress,
		"--method", "transfer(address,uint256)",
		"--limit", "4",
		"--recipient", "ops@example.com",
	}

	cfg, err := thresholdArgs(commandContext(t, thresholdCommand, full...), policy)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), cfg.Limit)
	assert.Equal(t, domain.DefaultThresholdWindow, cfg.Window)
	assert.Equal(t, domain.DefaultThresholdInterval, cfg.Interval)

	cfg, err = thresholdArgs(commandContext(t, thresholdCommand, append(full, "--window", "10", "--interval", "5s")...), policy)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), cfg.Window)
	assert.Equal(t, 5*time.Second, cfg.Interval)

	cfg, err = thresholdArgs(commandContext(t, thresholdCommand,
		"--address", testAddress, "--method", "f()", "--limit", "0", "--recipient", "r"), policy)
	require.NoError(t, err, "an explicit zero limit is valid")
	assert.Zero(t, cfg.Limit)

	for i := 0; i < len(full); i += 2 {
		missing := append(append([]string{}, full[:i]...), full[i+2:]...)
		t.Run("without "+full[i], func(t *testing.T) {
			_, err := thresholdArgs(commandContext(t, thresholdCommand, missing...), policy)
			assertUsageError(t, err)
		})
	}
}

func TestEventArgs(t *testing.T) {
	opts, err := eventArgs(commandContext(t, eventsCommand, "--address", testAddress, "--event", "Transfer(address,address,uint256)"))
	require.NoError(t, err)
	assert.Equal(t, "Transfer(address,address,uint256)", opts.signature)
	assert.Empty(t, opts.recipient)

	_, err = eventArgs(commandContext(t, eventsCommand, "--address", testAddress))
	assertUsageError(t, err)
}

func TestFetchArgs(t *testing.T) {
	base := []string{"--address", testAddress, "--start", "100", "--end", "200"}

	testCases := []struct {
		name       string
		args       []string
		wantMode   fetchMode
		wantSource domain.TxSource
		wantUsage  bool
	}{
		{name: "all", args: append(base, "--all"), wantMode: "all", wantSource: application.SourceAll},
		{name: "normal", args: append(base, "--normal"), wantMode: "normal", wantSource: domain.SourceDirect},
		{name: "internal", args: append(base, "--internal"), wantMode: "internal", wantSource: domain.SourceInternal},
		{name: "mix", args: append(base, "--mix"), wantMode: fetchModeMix},
		{name: "no mode", args: base, wantUsage: true},
		{name: "two modes", args: append(base, "--all", "--mix"), wantUsage: true},
		{name: "missing end", args: []string{"--address", testAddress, "--start", "1", "--all"}, wantUsage: true},
		{name: "reversed range", args: []string{"--address", testAddress, "--start", "9", "--end", "1", "--all"}, wantUsage: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := fetchArgs(commandContext(t, fetchCommand, tc.args...))
			if tc.wantUsage {
				assertUsageError(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMode, opts.mode)
			if tc.wantMode != fetchModeMix {
				assert.Equal(t, tc.wantSource, opts.source())
			}
			assert.Equal(t, uint64(100), opts.blocks.From.Value())
			assert.Equal(t, uint64(200), opts.blocks.To.Value())
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUsage, exitCode(usagef("bad")))
	assert.Equal(t, exitUsage, exitCode(fmt.Errorf("wrapped: %w", usagef("bad"))))
	assert.Equal(t, exitFatal, exitCode(fmt.Errorf("%w: refused", domain.ErrConnection)))
}

func TestPrintFetch(t *testing.T) {
	ctx := context.Background()
	addr, err := domain.NewAddress(testAddress)
	require.NoError(t, err)
	blocks := domain.BlockRange{From: domain.BlockHeightOf(100), To: domain.BlockHeightOf(200)}

	hash, err := domain.NewTransactionHash(fmt.Sprintf("0x%064x", 1))
	require.NoError(t, err)
	mixer, err := domain.NewAddress("0x722122df12d4e14e13ac3b6895a86e84145b6967")
	require.NoError(t, err)
	value, err := domain.NewWeiValue("42")
	require.NoError(t, err)
	tx := domain.Transaction{Hash: hash, From: addr, To: mixer, Value: value, Source: domain.SourceDirect}

	fetcher := mock_client.NewTransactionFetcher(t)
	fetcher.On("FetchAll", ctx, addr, blocks).Return([]domain.Transaction{tx}, nil).Twice()

	repo := registry.NewInMemoryRegistry(domain.DefaultChain, domain.RegistrySnapshot{
		domain.DefaultChain: {MixingService: []string{mixer.String()}},
	})
	inspector, err := application.NewInspector(fetcher, repo, logger.NewDiscardLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printFetch(ctx, &out, inspector, fetchOptions{address: addr, blocks: blocks, mode: "all"}))
	var line txOutput
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &line))
	assert.Equal(t, hash.String(), line.Hash)
	assert.Equal(t, "42", line.Value)
	assert.Equal(t, "direct", line.Source)
	assert.Equal(t, mixer.Checksum(), line.To)

	out.Reset()
	require.NoError(t, printFetch(ctx, &out, inspector, fetchOptions{address: addr, blocks: blocks, mode: fetchModeMix}))
	assert.True(t, strings.Contains(out.String(), `"invoked_mixing_service":true`))
}
