package main

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/urfave/cli.v1"

	"sechelper/internal/config"
	"sechelper/internal/core/application"
	"sechelper/internal/core/domain"
)

// usageError marks invalid command-line input. It exits with code 2 after the usage text.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func requireString(ctx *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(ctx.String(name))
	if v == "" {
		return "", usagef("missing required flag --%s", name)
	}
	return v, nil
}

func requireAddress(ctx *cli.Context) (domain.Address, error) {
	raw, err := requireString(ctx, addressFlag.Name)
	if err != nil {
		return domain.Address{}, err
	}
	addr, err := domain.NewAddress(raw)
	if err != nil {
		return domain.Address{}, usagef("invalid --%s: %v", addressFlag.Name, err)
	}
	return addr, nil
}

func activityArgs(ctx *cli.Context) (domain.MonitorConfig, error) {
	addr, err := requireAddress(ctx)
	if err != nil {
		return domain.MonitorConfig{}, err
	}
	return domain.MonitorConfig{
		WatchedAddress: addr,
		Recipient:      strings.TrimSpace(ctx.String(recipientFlag.Name)),
	}, nil
}

func thresholdArgs(ctx *cli.Context, policy config.MonitorConfig) (domain.MonitorConfig, error) {
	addr, err := requireAddress(ctx)
	if err != nil {
		return domain.MonitorConfig{}, err
	}
	method, err := requireString(ctx, methodFlag.Name)
	if err != nil {
		return domain.MonitorConfig{}, err
	}
	if !ctx.IsSet(limitFlag.Name) {
		return domain.MonitorConfig{}, usagef("missing required flag --%s", limitFlag.Name)
	}
	recipient, err := requireString(ctx, recipientFlag.Name)
	if err != nil {
		return domain.MonitorConfig{}, err
	}

	cfg := domain.MonitorConfig{
		WatchedAddress:  addr,
		MethodSignature: method,
		Limit:           ctx.Uint64(limitFlag.Name),
		Recipient:       recipient,
		Window:          policy.ThresholdWindowBlocks,
		Interval:        time.Duration(policy.ThresholdIntervalSeconds) * time.Second,
	}
	if ctx.IsSet(windowFlag.Name) {
		cfg.Window = ctx.Uint64(windowFlag.Name)
	}
	if ctx.IsSet(intervalFlag.Name) {
		cfg.Interval = ctx.Duration(intervalFlag.Name)
	}
	if cfg.Window == 0 {
		cfg.Window = domain.DefaultThresholdWindow
	}
	if cfg.Interval <= 0 {
		cfg.Interval = domain.DefaultThresholdInterval
	}
	if err := cfg.ValidateForThreshold(); err != nil {
		return domain.MonitorConfig{}, usagef("%v", err)
	}
	return cfg, nil
}

type eventOptions struct {
	address   domain.Address
	signature string
	recipient string
}

func eventArgs(ctx *cli.Context) (eventOptions, error) {
	addr, err := requireAddress(ctx)
	if err != nil {
		return eventOptions{}, err
	}
	signature, err := requireString(ctx, eventFlag.Name)
	if err != nil {
		return eventOptions{}, err
	}
	return eventOptions{
		address:   addr,
		signature: signature,
		recipient: strings.TrimSpace(ctx.String(recipientFlag.Name)),
	}, nil
}

// fetchMode is the output selected by exactly one of --all, --normal, --internal and --mix.
type fetchMode string

const (
	fetchModeMix fetchMode = "mix"
)

type fetchOptions struct {
	address domain.Address
	blocks  domain.BlockRange
	mode    fetchMode
}

// source maps a transaction listing mode to the fetcher source.
func (o fetchOptions) source() domain.TxSource {
	switch o.mode {
	case fetchMode(allFlag.Name):
		return application.SourceAll
	case fetchMode(normalFlag.Name):
		return domain.SourceDirect
	default:
		return domain.SourceInternal
	}
}

func fetchArgs(ctx *cli.Context) (fetchOptions, error) {
	addr, err := requireAddress(ctx)
	if err != nil {
		return fetchOptions{}, err
	}
	for _, name := range []string{startFlag.Name, endFlag.Name} {
		if !ctx.IsSet(name) {
			return fetchOptions{}, usagef("missing required flag --%s", name)
		}
	}
	blocks, err := domain.NewBlockRange(
		domain.BlockHeightOf(ctx.Uint64(startFlag.Name)),
		domain.BlockHeightOf(ctx.Uint64(endFlag.Name)),
	)
	if err != nil {
		return fetchOptions{}, usagef("%v", err)
	}

	var modes []fetchMode
	for _, name := range []string{allFlag.Name, normalFlag.Name, internalFlag.Name, mixFlag.Name} {
		if ctx.Bool(name) {
			modes = append(modes, fetchMode(name))
		}
	}
	switch len(modes) {
	case 0:
		return fetchOptions{}, usagef("one of --all, --normal, --internal or --mix is required")
	case 1:
	default:
		return fetchOptions{}, usagef("--all, --normal, --internal and --mix are mutually exclusive")
	}

	return fetchOptions{address: addr, blocks: blocks, mode: modes[0]}, nil
}
