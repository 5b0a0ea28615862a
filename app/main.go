package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/lysyi3m/exitwp/app/cfg"
	"github.com/lysyi3m/exitwp/app/config"
	"github.com/lysyi3m/exitwp/app/export"
	"github.com/lysyi3m/exitwp/app/markup"
	"github.com/lysyi3m/exitwp/app/tasks"
	"github.com/lysyi3m/exitwp/app/writer"
)

func main() {
	envFiles := cfg.LoadDotEnv("")

	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: appCfg.LogLevel(),
	})))

	if len(envFiles) > 0 {
		slog.Debug("Loaded environment files", "files", envFiles)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg); err != nil {
		slog.Error("Conversion aborted", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *cfg.Cfg) error {
	slog.Info("Starting exitwp", "version", appCfg.Version)

	conversion, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	exports, err := discoverExports(appCfg.DataFile, conversion.WPExports)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		slog.Info("No input files found, exiting", "dir", conversion.WPExports)
		return nil
	}

	converter := markup.NewConverter(conversion.RendersHTML())
	parser := export.NewParser(conversion, converter)
	downloader := writer.NewHTTPDownloader(&http.Client{Timeout: appCfg.HTTPTimeout}, appCfg.UserAgent)

	pending := make([]tasks.TaskInterface, 0, len(exports))
	for _, path := range exports {
		// A fresh writer per export keeps the UID and attachment registries scoped to one file.
		w := writer.New(conversion, converter, downloader)
		pending = append(pending, tasks.NewConvertExportTask(path, parser, w))
	}

	runner := tasks.NewRunner()
	if err := runner.Run(ctx, pending); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Interrupted", "completed", runner.Completed(), "files", len(exports))
		}
		return err
	}

	slog.Info("All done", "files", len(exports))
	return nil
}

// discoverExports returns the explicit data file, or every *.xml file in dir.
func discoverExports(dataFile, dir string) ([]string, error) {
	if dataFile != "" {
		return []string{dataFile}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find export files: %w", err)
	}
	slices.Sort(files)

	return files, nil
}
