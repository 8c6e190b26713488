// Command devicectl loads a device store, prints dashboard views and exports
// reports to the configured blob backend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"devicecore/internal/blob"
	"devicecore/internal/config"
	"devicecore/internal/core"
	"devicecore/internal/observability/otel"
	"devicecore/internal/observability/prom"
	"devicecore/internal/report"
	"devicecore/internal/seed"
	"devicecore/pkg/domain"
)

const usage = `usage: devicectl [flags] <command> [command flags]

commands:
  dashboard   quick stats, status tally, open alerts, expiring contracts, recent activity (default)
  devices     list devices; -q term, -status Online|Offline|Maintenance, -facility id, -low-battery, -export
  alerts      list alerts; -status Open|Acknowledged|Resolved, -by-severity
  contracts   list contracts ending within -window days
  export      store a report; -kind, -format csv|json
  snapshot    print every collection as JSON
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	cfg      config.Config
	svc      *core.Service
	exporter *report.Exporter
	printer  *message.Printer
	stdout   io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("devicectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	seedPath := fs.String("seed", "", "YAML dataset to load instead of DEVICECORE_SEED_PATH or the bundled demo data")
	restorePath := fs.String("restore", "", "JSON snapshot, as printed by the snapshot command, to load instead of a dataset")
	empty := fs.Bool("empty", false, "start with an empty store")
	today := fs.String("today", "", "pin the current date (YYYY-MM-DD)")
	lang := fs.String("lang", "en", "locale for number formatting")
	audit := fs.Bool("audit", false, "write JSON audit entries to stderr")
	metrics := fs.Bool("metrics", false, "print metrics to stderr on exit")
	traceJSON := fs.Bool("trace-json", false, "write JSON trace spans to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger := core.NewStdLogger(log.New(stderr, "devicectl ", log.LstdFlags), cfg.Level())

	tag, err := language.Parse(*lang)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -lang %q: %v\n", *lang, err)
		return 2
	}

	shutdown, err := otel.Setup(ctx, otel.Options{ServiceName: "devicectl", Endpoint: cfg.OTelEndpoint, Enabled: cfg.OTelEnabled})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(flushCtx)
	}()

	registry := prometheus.NewRegistry()
	var (
		recorder  core.MetricsRecorder
		expvarRec *core.ExpvarMetricsRecorder
	)
	if cfg.Metrics == config.MetricsExpvar {
		expvarRec = core.NewExpvarMetricsRecorder("")
		recorder = expvarRec
	} else {
		if recorder, err = prom.NewMetricsRecorder(registry); err != nil {
			fmt.Fprintf(stderr, "metrics: %v\n", err)
			return 1
		}
	}

	opts := []core.ServiceOption{
		core.WithLogger(logger),
		core.WithMetricsRecorder(recorder),
		core.WithViewDefaults(cfg.ViewDefaults()),
	}
	switch {
	case *traceJSON:
		opts = append(opts, core.WithTracer(core.NewJSONTracer(stderr)))
	case cfg.TracingEnabled():
		opts = append(opts, core.WithTracer(otel.NewTracer(nil)))
	}
	if *audit {
		opts = append(opts, core.WithAuditRecorder(core.NewJSONAuditRecorder(stderr)))
	}
	if *today != "" {
		day, err := domain.ParseDate(*today)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -today: %v\n", err)
			return 2
		}
		pinned := day.Time().Add(12 * time.Hour)
		opts = append(opts, core.WithClock(core.ClockFunc(func() time.Time { return pinned })))
	}
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine(), opts...)
	_ = registry.Register(prom.NewStoreCollector(svc))

	switch {
	case *restorePath != "":
		if err := restoreSnapshot(ctx, svc, *restorePath, logger); err != nil {
			fmt.Fprintf(stderr, "restore: %v\n", err)
			return 1
		}
	case !*empty:
		if err := loadSeed(ctx, svc, pick(*seedPath, cfg.SeedPath), logger); err != nil {
			fmt.Fprintf(stderr, "seed: %v\n", err)
			return 1
		}
	}

	store, err := blob.Open(ctx, cfg.BlobOptions())
	if err != nil {
		fmt.Fprintf(stderr, "blob: %v\n", err)
		return 1
	}

	a := &app{
		cfg:      cfg,
		svc:      svc,
		exporter: report.NewExporter(svc, store, report.WithLogger(logger)),
		printer:  message.NewPrinter(tag),
		stdout:   stdout,
	}

	command, rest := "dashboard", fs.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}
	code := a.dispatch(ctx, command, rest, stderr)

	if *metrics {
		if expvarRec != nil {
			fmt.Fprintln(stderr, expvar.Get(expvarRec.Name()).String())
		} else if err := writeMetrics(stderr, registry); err != nil {
			logger.Error("write metrics", "error", err)
		}
	}
	return code
}

func (a *app) dispatch(ctx context.Context, command string, args []string, stderr io.Writer) int {
	var err error
	switch command {
	case "dashboard":
		err = a.dashboard(ctx)
	case "devices":
		err = a.devices(ctx, args, stderr)
	case "alerts":
		err = a.alerts(ctx, args, stderr)
	case "contracts":
		err = a.contracts(ctx, args, stderr)
	case "export":
		err = a.export(ctx, args, stderr)
	case "snapshot":
		err = a.snapshot(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return 2
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return 1
	}
	return 0
}

func loadSeed(ctx context.Context, svc *core.Service, path string, logger core.Logger) error {
	ds := seed.Default()
	if path != "" {
		var err error
		if ds, err = seed.LoadFile(path); err != nil {
			return err
		}
	}
	counts, err := seed.Apply(ctx, svc, ds)
	if err != nil {
		return err
	}
	logger.Info("store seeded", "records", counts.Total(), "source", pick(path, "bundled"))
	return nil
}

func restoreSnapshot(ctx context.Context, svc *core.Service, path string, logger core.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	var snap core.Snapshot
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if _, err := svc.Restore(ctx, snap); err != nil {
		return err
	}
	logger.Info("store restored", "devices", len(snap.Devices), "source", path)
	return nil
}

func (a *app) snapshot(ctx context.Context) error {
	snap, err := a.svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
