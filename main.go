package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ippriv/ippriv/internal/apiclient"
	"github.com/ippriv/ippriv/internal/config"
	"github.com/ippriv/ippriv/internal/export"
	"github.com/ippriv/ippriv/internal/lookup"
	"github.com/ippriv/ippriv/internal/metrics"
	"github.com/ippriv/ippriv/internal/model"
	"github.com/ippriv/ippriv/internal/ratelimit"
	"github.com/ippriv/ippriv/internal/share"
	"github.com/ippriv/ippriv/internal/validate"
)

const usage = `usage: ippriv [flags] <command> [args]

commands:
  lookup [ip]      look up ip, or this machine's public address when omitted
  share [ip]       look up and print a share link
  open <param>     decode and print a share parameter or link

flags:
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

type options struct {
	apiURL      string
	timeout     time.Duration
	format      string
	outDir      string
	metricsFile string
	stats       bool
	verbose     bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	var opts options
	fs := flag.NewFlagSet("ippriv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.apiURL, "api-url", cfg.BaseURL, "ippriv API base URL")
	fs.DurationVar(&opts.timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.StringVar(&opts.format, "format", "text", "output format: text, json or csv")
	fs.StringVar(&opts.outDir, "out", "", "write the json/csv report into this directory instead of stdout")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	fs.BoolVar(&opts.stats, "stats", false, "print rate governor stats to stderr on exit")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch opts.format {
	case "text", "json", "csv":
	default:
		fmt.Fprintf(stderr, "unknown -format %q\n", opts.format)
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	reg := prometheus.NewRegistry()
	app, err := newApp(cfg, opts, logger, metrics.New(reg))
	if err != nil {
		logger.Error("startup failed", "component", "main", "error", err)
		return 1
	}
	defer app.close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "lookup":
		err = app.lookup(ctx, rest, stdout)
	case "share":
		err = app.share(ctx, rest, stdout)
	case "open":
		err = app.open(rest, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	if opts.stats {
		stats := app.client.GuardStats()
		stats.LocalDB = app.service.LocalDBLoaded()
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(stats)
	}
	if opts.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(opts.metricsFile, reg); werr != nil {
			logger.Error("write metrics", "component", "main", "path", opts.metricsFile, "error", werr)
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "ippriv: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	cfg     *config.Config
	opts    options
	logger  *slog.Logger
	client  *apiclient.Client
	service *lookup.Service
	now     func() time.Time
}

func newApp(cfg *config.Config, opts options, logger *slog.Logger, m *metrics.Metrics) (*app, error) {
	governor := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)

	client, err := apiclient.New(opts.apiURL, governor,
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(m),
		apiclient.WithTimeout(opts.timeout),
		apiclient.WithRetry(apiclient.RetryPolicy{
			Enabled:  cfg.RetryEnabled,
			Attempts: cfg.RetryAttempts,
			Delay:    cfg.RetryDelay,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	svc, err := lookup.NewService(client,
		lookup.WithLogger(logger),
		lookup.WithMetrics(m),
		lookup.WithLocalDB(lookup.OpenLocalDB(cfg.MMDBPath, logger)),
		lookup.WithDemoIP(cfg.DemoIP),
	)
	if err != nil {
		return nil, fmt.Errorf("lookup service: %w", err)
	}

	logger.Debug("ready", "component", "main",
		"api", opts.apiURL, "rate_limit", cfg.RateLimitMax, "window", cfg.RateLimitWindow,
		"retry", cfg.RetryEnabled, "local_db", svc.LocalDBLoaded())

	return &app{cfg: cfg, opts: opts, logger: logger, client: client, service: svc, now: time.Now}, nil
}

func (a *app) close() {
	a.service.Close()
}

// resolve runs a self lookup when args is empty, otherwise a lookup of the
// sanitised first argument.
func (a *app) resolve(ctx context.Context, args []string) (*model.Lookup, error) {
	if len(args) == 0 {
		return a.service.LookupSelf(ctx)
	}
	ip := validate.SanitizeIP(args[0])
	if !validate.IsLookupInput(ip) {
		return nil, fmt.Errorf("invalid IP address: %q", args[0])
	}
	return a.service.Lookup(ctx, ip), nil
}

func (a *app) lookup(ctx context.Context, args []string, stdout io.Writer) error {
	result, err := a.resolve(ctx, args)
	if err != nil {
		return err
	}
	if a.opts.format == "text" {
		return renderLookup(stdout, result)
	}

	now := a.now()
	write := export.JSON
	if a.opts.format == "csv" {
		write = export.CSV
	}
	if a.opts.outDir == "" {
		return write(stdout, result, now)
	}

	path := filepath.Join(a.opts.outDir, export.Filename(result.IP, a.opts.format, now))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := write(f, result, now); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintln(stdout, path)
	return nil
}

func (a *app) share(ctx context.Context, args []string, stdout io.Writer) error {
	result, err := a.resolve(ctx, args)
	if err != nil {
		return err
	}
	encoded, err := share.Encode(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, share.URL(a.cfg.ShareBaseURL, encoded))
	return nil
}

func (a *app) open(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("open: share parameter or link required")
	}
	snap, err := share.Decode(shareParam(args[0]))
	if err != nil {
		return err
	}
	if a.opts.format == "text" {
		return renderSnapshot(stdout, snap)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// shareParam extracts the share query parameter when given a whole link.
func shareParam(arg string) string {
	if !strings.Contains(arg, "?") {
		return arg
	}
	u, err := url.Parse(arg)
	if err != nil {
		return arg
	}
	if v := u.Query().Get(share.Param); v != "" {
		return v
	}
	return arg
}
