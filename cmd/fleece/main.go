package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/framing"
	"github.com/nicwaller/fleece/input"
)

// set by ldflags during build
var (
	version = "0.1"
	commit  = ""
)

func main() {
	os.Exit(realMain(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	prog := filepath.Base(args[0])
	fs := newFlagSet(prog)
	fs.SetOutput(io.Discard)

	app, err := loadConfig(fs, args[1:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, prog, fs)
		return 1
	}
	if app.ShowVersion {
		if commit != "" {
			fmt.Fprintf(stdout, "Fleece version %s (%s)\n", version, commit)
		} else {
			fmt.Fprintf(stdout, "Fleece version %s\n", version)
		}
		return 0
	}
	if app.ShowHelp {
		usage(stdout, prog, fs)
		return 0
	}

	cfg, err := resolve(app, os.Hostname)
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, prog, fs)
		return 1
	}

	dec, err := framing.DecompressorByName(app.Decompress)
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, prog, fs)
		return 1
	}

	if err := setupLogging(stderr, app.LogLevel, app.LogFormat); err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, prog, fs)
		return 1
	}

	if err := run(context.Background(), app, cfg, input.Compressed(stdin, cfg.WindowSize, dec), stdout); err != nil {
		slog.Error("fleece stopped", "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer, prog string, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [options]\n", prog)
	fmt.Fprint(w, fs.FlagUsages())
}

func run(ctx context.Context, app appConfig, cfg fleece.Config, in fleece.InputPlugin, stdout io.Writer) error {
	var registry *prometheus.Registry
	var metrics *fleece.Metrics
	if app.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = fleece.NewMetrics(registry)
	}

	out, closeOutput, err := buildOutput(cfg, app.DryRun, stdout, metrics)
	if err != nil {
		return err
	}
	defer closeOutput()

	pipeline := buildPipeline(cfg, in, out, metrics)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if registry != nil {
		srv, err := newMetricsServer(app.MetricsAddr, registry)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	slog.Info(fmt.Sprintf("fleece: sending jsonified stdin to %s", cfg.Destination),
		"window_size", cfg.WindowSize,
		"fields", len(cfg.StaticFields),
		"host", cfg.Hostname,
		"dry_run", app.DryRun,
		"decompress", app.Decompress,
	)

	g.Go(func() error {
		// end of stdin ends everything else too
		defer cancel()
		return pipeline.Run(gctx)
	})

	return g.Wait()
}

func setupLogging(w io.Writer, level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: must be debug, info, warn or error", level)
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		return fmt.Errorf("invalid --log-format %q: must be text or json", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
