package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"orderimport/internal/backend"
	"orderimport/internal/cli"
	"orderimport/internal/config"
	"orderimport/internal/discovery"
	"orderimport/internal/importer"
	applog "orderimport/internal/log"
	"orderimport/internal/report"
	"orderimport/internal/services"
)

// errNoFile is returned by resolvePath when the user picked nothing.
var errNoFile = errors.New("no file selected")

func main() {
	dir := flag.String("dir", "", "directory scanned for order files (overrides INCOMING_DIR)")
	header := flag.String("header", "", "header policy: none, skip or detect (overrides HEADER_POLICY)")
	currency := flag.String("currency", "", "currency label for amounts (overrides CURRENCY)")
	flag.Parse()

	cli.LoadEnvFile()
	bootstrap := cli.SetupLogger(nil)
	cfg := cli.LoadAndValidateConfig(bootstrap, func(c *config.Config) {
		if *dir != "" {
			c.IncomingDir = *dir
		}
		if *header != "" {
			c.HeaderPolicy = *header
		}
		if *currency != "" {
			c.Currency = *currency
		}
	})
	logger := cli.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, logger, cfg, flag.Args(), os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

// run performs one import and returns the process exit code.
func run(ctx context.Context, logger *applog.Logger, cfg *config.Config, args []string, in io.Reader, out io.Writer) int {
	path, err := resolvePath(logger, cfg, args, in, out)
	if err != nil {
		if errors.Is(err, errNoFile) {
			logger.Info("No file selected. Exiting.")
		} else {
			logger.Error("Failed to find an order file",
				applog.FieldError, err,
				applog.FieldOperation, applog.OpSelect)
		}
		return 1
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		return 1
	}
	res, err := backend.NewFactory(logger.Logger.With(applog.FieldComponent, applog.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize report backend",
			applog.FieldError, err,
			"backend", bcfg.Type.String())
		return 1
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Backend cleanup failed",
					applog.FieldError, err,
					applog.FieldOperation, applog.OpShutdown)
			}
		}()
	}

	svc := services.NewImportService(logger, importerOptions(cfg), res.Writers, cfg.Currency, cfg.PublishTimeout)
	sum, importErr := svc.Import(ctx, path)

	if err := report.Render(out, sum); err != nil {
		logger.Error("Failed to render summary", applog.FieldError, err)
		return 1
	}
	if importErr != nil {
		return 1
	}
	return 0
}

// resolvePath returns the file named on the command line when it exists and
// otherwise falls back to discovery and the interactive menu.
func resolvePath(logger *applog.Logger, cfg *config.Config, args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		path := args[0]
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			logger.Debug("Using file from arguments", applog.FieldFile, path)
			return path, nil
		}
		logger.Warn("File from arguments not usable, falling back to menu",
			applog.FieldFile, path,
			applog.FieldError, err)
	}

	dlog := logger.WithComponent(applog.ComponentDiscovery)
	candidates, err := discovery.Find(cfg.IncomingDir, cfg.ProbeLines)
	if err != nil {
		return "", err
	}
	dlog.Debug("Order files found",
		"dir", cfg.IncomingDir,
		"count", len(candidates),
		applog.FieldOperation, applog.OpProbe)

	c, err := discovery.Select(in, out, candidates)
	if err != nil {
		if errors.Is(err, discovery.ErrAborted) {
			return "", errNoFile
		}
		return "", err
	}
	dlog.Info("File selected", applog.FieldFile, c.Path, applog.FieldOperation, applog.OpSelect)
	return c.Path, nil
}

func importerOptions(cfg *config.Config) importer.Options {
	return importer.Options{
		Header:         importer.HeaderPolicy(cfg.HeaderPolicy),
		SkipBlankLines: cfg.SkipBlankLines,
	}
}
