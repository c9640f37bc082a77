// Command emerge runs a single analysis over a source directory and
// prints the resulting bundle as indented JSON.
//
// Usage:
//
//	emerge -source ./path/to/project [options]
//
// This exists only to make the module runnable end to end. It is not
// the CLI front end spec.md places out of scope: no subcommands, no
// config-file loader, no persistent daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glato/emerge/internal/output"
	"github.com/glato/emerge/pkg/emerge/analysis"
	"github.com/glato/emerge/pkg/emerge/config"
)

func main() {
	var (
		source        = flag.String("source", "", "source directory to analyze (required)")
		analysisName  = flag.String("name", "default", "analysis name, recorded in the bundle")
		projectName   = flag.String("project-name", "", "project name, recorded in the bundle (default: basename of -source)")
		onlyLanguages = flag.String("languages", "", "comma-separated list of languages to permit (empty: all supported)")
		fileScan      = flag.String("file-scan", "", "comma-separated file-scan metric tokens (see config.Token* constants)")
		entityScan    = flag.String("entity-scan", "", "comma-separated entity-scan metric tokens")
		ignoreDirs    = flag.String("ignore-dirs", "", "comma-separated directory-name substrings to ignore")
		compact       = flag.Bool("compact", false, "print compact JSON instead of indented JSON")
		debug         = flag.Bool("debug", false, "enable debug logging")
		metricsAddr   = flag.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `emerge - static analysis engine

Usage:
  emerge -source <dir> [options]

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "Error: -source is required")
		flag.Usage()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("metrics.http.start", "addr", *metricsAddr, "path", "/metrics")
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics.http.error", "err", err)
			}
		}()
	}

	name := *projectName
	if name == "" {
		name = strings.TrimRight(*source, "/")
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
	}

	an := &config.Analysis{
		Name:                        *analysisName,
		SourceDirectory:             *source,
		OnlyPermitLanguages:         splitCSV(*onlyLanguages),
		IgnoreDirectoriesContaining: splitCSV(*ignoreDirs),
		FileScanMetrics:             splitCSV(*fileScan),
		EntityScanMetrics:           splitCSV(*entityScan),
	}

	a := analysis.New(an, logger)
	bundle, err := a.Run(context.Background(), name)
	if err != nil {
		_ = output.JSONError(err)
		os.Exit(1)
	}

	var encErr error
	if *compact {
		encErr = output.JSONCompact(bundle)
	} else {
		encErr = output.JSON(bundle)
	}
	if encErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", encErr)
		os.Exit(1)
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
