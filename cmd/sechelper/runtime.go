package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/urfave/cli.v1"

	"sechelper/internal/adapters/explorer"
	"sechelper/internal/adapters/metrics"
	"sechelper/internal/adapters/notify"
	"sechelper/internal/adapters/restapi"
	"sechelper/internal/adapters/rpc"
	"sechelper/internal/adapters/storage/jsonfile"
	"sechelper/internal/config"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

const shutdownTimeout = 15 * time.Second

// runtime holds the process-wide dependencies shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   logger.AppLogger
	gatherer *prometheus.Registry
	metrics  *metrics.DetectorMetrics
}

func loadRuntime(ctx *cli.Context) (*runtime, error) {
	configFile := ctx.GlobalString(configFileFlag.Name)
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.NewAppLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		configFile = config.DefaultConfigFilePath + " (default)"
	}
	appLogger.Info("Configuration loaded successfully", "configFile", configFile, "command", ctx.Command.Name)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &runtime{
		cfg:      cfg,
		logger:   appLogger,
		gatherer: reg,
		metrics:  metrics.NewDetectorMetrics(reg),
	}, nil
}

func (rt *runtime) dial(ctx context.Context) (*rpc.NodeAdapter, error) {
	return rpc.Dial(ctx, rt.cfg.ETHClient, rt.logger)
}

func (rt *runtime) explorer() *explorer.Client {
	return explorer.NewClient(rt.cfg.Explorer, nil, rt.logger)
}

func (rt *runtime) registry() *jsonfile.Registry {
	return jsonfile.NewRegistry(rt.cfg.Registry.Path, rt.cfg.Registry.Chain, rt.logger,
		jsonfile.WithSaveHook(rt.metrics.RegistryWritten))
}

func (rt *runtime) sink() (*notify.Multi, error) {
	return notify.NewFromConfig(rt.cfg.Alert, rt.logger)
}

func (rt *runtime) logSink() notifier.AlertSink {
	return notify.NewLogSink(rt.logger)
}

func closeQuietly(rt *runtime, c io.Closer) {
	if err := c.Close(); err != nil {
		rt.logger.Warn("Failed to close resource", logger.KeyError, err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// serve runs the detector and, when enabled, the status server until a signal
// arrives or either of them fails.
func (rt *runtime) serve(detector string, registry repository.AddressRegistry, run func(ctx context.Context) error) error {
	ctx, stop := signalContext()
	defer stop()

	var apiServer *restapi.Server
	if rt.cfg.Server.Enabled {
		var err error
		apiServer, err = restapi.NewServer(registry, rt.gatherer, detector, rt.logger, &rt.cfg.Server)
		if err != nil {
			return fmt.Errorf("failed to create status server: %w", err)
		}
	}

	detectorDone := make(chan error, 1)
	go func() {
		rt.logger.Info("Starting detector...", logger.KeyDetector, detector)
		detectorDone <- run(ctx)
	}()

	serverErr := make(chan error, 1)
	if apiServer != nil {
		go func() {
			if errServ := apiServer.Start(); errServ != nil {
				serverErr <- fmt.Errorf("status server error: %w", errServ)
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-detectorDone:
		detectorDone = nil
	case runErr = <-serverErr:
	case <-ctx.Done():
		rt.logger.Info("Shutting down due to OS signal...")
	}
	stop()

	if detectorDone != nil {
		select {
		case err := <-detectorDone:
			if runErr == nil {
				runErr = err
			}
		case <-time.After(shutdownTimeout):
			rt.logger.Warn("Detector did not stop in time", "timeout", shutdownTimeout)
		}
	}

	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			rt.logger.Error("Status server shutdown error", logger.KeyError, err)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if runErr != nil {
		rt.logger.Error("Shutting down due to error", logger.KeyError, runErr)
		return runErr
	}
	rt.logger.Info("Application shut down gracefully.")
	return nil
}
