package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"

	"sechelper/internal/core/application"
	"sechelper/internal/core/domain"
)

var (
	activityCommand = cli.Command{
		Name:         "activity",
		Usage:        "Alert on every transaction touching an address",
		Flags:        []cli.Flag{addressFlag, recipientFlag},
		Action:       withUsage(runActivity),
		OnUsageError: onUsageError,
	}
	thresholdCommand = cli.Command{
		Name:         "threshold",
		Usage:        "Alert when a method is called too often within a trailing block window",
		Flags:        []cli.Flag{addressFlag, methodFlag, limitFlag, recipientFlag, windowFlag, intervalFlag},
		Action:       withUsage(runThreshold),
		OnUsageError: onUsageError,
	}
	mixingCommand = cli.Command{
		Name:         "mixing",
		Usage:        "Record senders interacting with known mixing services as potential hackers",
		Action:       withUsage(runMixing),
		OnUsageError: onUsageError,
	}
	eventsCommand = cli.Command{
		Name:         "events",
		Usage:        "Stream contract logs matching an event signature",
		Flags:        []cli.Flag{addressFlag, eventFlag, recipientFlag},
		Action:       withUsage(runEvents),
		OnUsageError: onUsageError,
	}
	fetchCommand = cli.Command{
		Name:         "fetch",
		Usage:        "Print the transactions of an address in a block range",
		Flags:        []cli.Flag{addressFlag, startFlag, endFlag, allFlag, normalFlag, internalFlag, mixFlag},
		Action:       withUsage(runFetch),
		OnUsageError: onUsageError,
	}
)

// withUsage prints the command help before returning a usage error.
func withUsage(action func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		err := action(ctx)
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			_ = cli.ShowCommandHelp(ctx, ctx.Command.Name)
		}
		return err
	}
}

// onUsageError turns flag parsing failures into usage errors.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usagef("%v", err)
}

func runActivity(ctx *cli.Context) error {
	monitorCfg, err := activityArgs(ctx)
	if err != nil {
		return err
	}
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	return rt.serve(application.ActivityDetector, nil, func(runCtx context.Context) error {
		provider, err := rt.dial(runCtx)
		if err != nil {
			return err
		}
		defer provider.Close()

		sink, err := rt.sink()
		if err != nil {
			return err
		}
		defer closeQuietly(rt, sink)

		rule, err := application.NewActivityRule(rt.explorer(), monitorCfg, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		trigger, err := application.NewBlockTrigger(runCtx, provider)
		if err != nil {
			return err
		}
		monitor, err := application.NewMonitor(trigger, rule, sink, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		return monitor.Run(runCtx)
	})
}

func runThreshold(ctx *cli.Context) error {
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}
	monitorCfg, err := thresholdArgs(ctx, rt.cfg.Monitor)
	if err != nil {
		return err
	}

	return rt.serve(application.ThresholdDetector, nil, func(runCtx context.Context) error {
		provider, err := rt.dial(runCtx)
		if err != nil {
			return err
		}
		defer provider.Close()

		sink, err := rt.sink()
		if err != nil {
			return err
		}
		defer closeQuietly(rt, sink)

		rule, err := application.NewThresholdRule(rt.explorer(), monitorCfg, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		trigger, err := application.NewTimerTrigger(provider, monitorCfg.Interval)
		if err != nil {
			return err
		}
		monitor, err := application.NewMonitor(trigger, rule, sink, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		return monitor.Run(runCtx)
	})
}

func runMixing(ctx *cli.Context) error {
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}
	registry := rt.registry()

	return rt.serve(application.MixingDetector, registry, func(runCtx context.Context) error {
		provider, err := rt.dial(runCtx)
		if err != nil {
			return err
		}
		defer provider.Close()

		rule, err := application.NewMixingServiceRule(runCtx, rt.explorer(), registry, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		trigger, err := application.NewBlockTrigger(runCtx, provider)
		if err != nil {
			return err
		}
		// The mixing rule never alerts; the log sink satisfies the monitor contract.
		monitor, err := application.NewMonitor(trigger, rule, rt.logSink(), rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		return monitor.Run(runCtx)
	})
}

func runEvents(ctx *cli.Context) error {
	opts, err := eventArgs(ctx)
	if err != nil {
		return err
	}
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	return rt.serve(application.EventDetector, nil, func(runCtx context.Context) error {
		provider, err := rt.dial(runCtx)
		if err != nil {
			return err
		}
		defer provider.Close()

		sink, err := rt.sink()
		if err != nil {
			return err
		}
		defer closeQuietly(rt, sink)

		listener, err := application.NewEventListener(provider, sink, opts.address, opts.signature, opts.recipient, rt.logger, rt.metrics)
		if err != nil {
			return err
		}
		return listener.Run(runCtx)
	})
}

func runFetch(ctx *cli.Context) error {
	opts, err := fetchArgs(ctx)
	if err != nil {
		return err
	}
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	inspector, err := application.NewInspector(rt.explorer(), rt.registry(), rt.logger)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()
	return printFetch(runCtx, os.Stdout, inspector, opts)
}

func printFetch(ctx context.Context, out io.Writer, inspector *application.Inspector, opts fetchOptions) error {
	enc := json.NewEncoder(out)

	if opts.mode == fetchModeMix {
		invoked, err := inspector.InvokedMixingService(ctx, opts.address, opts.blocks)
		if err != nil {
			return err
		}
		return enc.Encode(mixOutput{
			Address:              opts.address.Checksum(),
			From:                 opts.blocks.From.Value(),
			To:                   opts.blocks.To.Value(),
			InvokedMixingService: invoked,
		})
	}

	txs, err := inspector.Transactions(ctx, opts.source(), opts.address, opts.blocks)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		if err := enc.Encode(toTxOutput(tx)); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", tx.Hash, err)
		}
	}
	return nil
}

type txOutput struct {
	Hash     string `json:"hash"`
	From     string `json:"from"`
	To       string `json:"to"`
	Value    string `json:"value"`
	MethodID string `json:"methodId"`
	Input    string `json:"input,omitempty"`
	Source   string `json:"source"`
}

func toTxOutput(tx domain.Transaction) txOutput {
	return txOutput{
		Hash:     tx.Hash.String(),
		From:     tx.From.Checksum(),
		To:       tx.To.Checksum(),
		Value:    tx.Value.String(),
		MethodID: tx.MethodSelector.String(),
		Input:    tx.Input,
		Source:   string(tx.Source),
	}
}

type mixOutput struct {
	Address              string `json:"address"`
	From                 uint64 `json:"from"`
	To                   uint64 `json:"to"`
	InvokedMixingService bool   `json:"invoked_mixing_service"`
}
