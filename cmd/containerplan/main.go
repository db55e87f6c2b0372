// ContainerPlan - container layout planner
//
// Runs a plan script against a fresh container layout, prints the resulting
// quote and optionally exports it as PDF and Excel.
//
// Build:
//
//	go build -o containerplan ./cmd/containerplan
//
// Example:
//
//	containerplan -script plan.txt -pdf quote.pdf -xlsx quote.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/piwi3910/ContainerPlan/internal/export"
	"github.com/piwi3910/ContainerPlan/internal/importer"
	"github.com/piwi3910/ContainerPlan/internal/layout"
	"github.com/piwi3910/ContainerPlan/internal/logging"
	"github.com/piwi3910/ContainerPlan/internal/model"
	"github.com/piwi3910/ContainerPlan/internal/observability"
	"github.com/piwi3910/ContainerPlan/internal/project"
	"github.com/piwi3910/ContainerPlan/internal/script"
)

// maxRecentExports bounds the recent exports list kept in the config.
const maxRecentExports = 10

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	catalogPath string
	importPath  string
	scriptPath  string
	pdfPath     string
	xlsxPath    string
	backupPath  string
	metricsAddr string
	strict      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("containerplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "Path to the JSON application config")
	fs.StringVar(&o.catalogPath, "catalog", "", "Catalog file (.yaml or .json); overrides the config catalog_path")
	fs.StringVar(&o.importPath, "import", "", "CSV or Excel file of furniture rows merged into the catalog")
	fs.StringVar(&o.scriptPath, "script", "", "Plan script to run; \"-\" reads standard input")
	fs.StringVar(&o.pdfPath, "pdf", "", "Write the quote as PDF to this path")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "Write the quote as an Excel workbook to this path")
	fs.StringVar(&o.backupPath, "backup", "", "Write a JSON backup of config and catalog to this path")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus /metrics on this address after the run until interrupted")
	fs.BoolVar(&o.strict, "strict", false, "Stop at the first rejected script command")
	err := fs.Parse(args)
	return o, err
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	log := logging.NewFromEnv(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})

	cat, err := loadCatalog(log, cfg, opts)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		return 1
	}

	collector, err := observability.NewLayoutCollector(prometheus.NewRegistry())
	if err != nil {
		log.Error("failed to initialise metrics collector", "error", err)
		return 1
	}
	eng, err := layout.New(cat,
		layout.WithLogger(log),
		layout.WithObserver(collector),
		layout.WithInitial(cfg.DefaultContainerSize, cfg.DefaultInsulation),
	)
	if err != nil {
		log.Error("failed to create layout engine", "error", err)
		return 1
	}
	sub := eng.SubscribeReady(collector)
	defer sub.Unsubscribe()

	if opts.scriptPath != "" {
		if err := runScript(eng, opts, stdin, stdout); err != nil {
			log.Error("plan script failed", "path", opts.scriptPath, "error", err)
			return 1
		}
	}

	quote := export.BuildQuote(eng.Snapshot().Layout, cfg.Currency)
	fmt.Fprintln(stdout, quote.Text())

	exported, err := writeExports(log, quote, opts)
	if err != nil {
		log.Error("export failed", "error", err)
		return 1
	}
	if opts.backupPath != "" {
		if err := project.ExportAllData(opts.backupPath, cfg, &cat); err != nil {
			log.Error("backup failed", "path", opts.backupPath, "error", err)
			return 1
		}
		log.Info("backup written", "path", opts.backupPath)
	}
	if len(exported) > 0 {
		for _, p := range exported {
			cfg.AddRecentExport(p, maxRecentExports)
		}
		if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
			log.Warn("failed to record recent exports", "path", opts.configPath, "error", err)
		}
	}

	if opts.metricsAddr != "" {
		serveMetrics(opts.metricsAddr, collector, log)
	}
	return 0
}

// loadCatalog reads the configured catalog and merges imported furniture.
func loadCatalog(log *slog.Logger, cfg model.AppConfig, opts options) (model.Catalog, error) {
	path := opts.catalogPath
	if path == "" {
		path = cfg.CatalogPath
	}
	cat, err := project.LoadCatalog(path)
	if err != nil {
		return model.Catalog{}, err
	}
	if opts.importPath == "" {
		return cat, nil
	}

	res := importer.ImportFile(opts.importPath)
	for _, w := range res.Warnings {
		log.Warn("import warning", "path", opts.importPath, "warning", w)
	}
	if len(res.Errors) > 0 {
		return model.Catalog{}, fmt.Errorf("import %s: %s", opts.importPath, res.Errors[0])
	}
	replaced := res.MergeInto(&cat)
	if err := cat.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("imported catalog is invalid: %w", err)
	}
	log.Info("furniture imported", "path", opts.importPath, "items", len(res.Items), "replaced", replaced)
	return cat, nil
}

func runScript(eng *layout.Engine, opts options, stdin io.Reader, stdout io.Writer) error {
	var r io.Reader = stdin
	if opts.scriptPath != "-" {
		f, err := os.Open(opts.scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	cmds, err := script.Parse(r)
	if err != nil {
		return err
	}

	results, err := script.NewRunner(eng, opts.strict).Run(cmds)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(stdout, "%3d  %-28s rejected (%s): %v\n", res.Command.Line, res.Command, res.Code(), res.Err)
			continue
		}
		fmt.Fprintf(stdout, "%3d  %-28s %s\n", res.Command.Line, res.Command, res.Detail)
	}
	if len(results) > 0 {
		fmt.Fprintln(stdout)
	}
	return err
}

func writeExports(log *slog.Logger, q export.Quote, opts options) ([]string, error) {
	var written []string
	if opts.pdfPath != "" {
		if err := export.ExportQuotePDF(opts.pdfPath, q); err != nil {
			return written, fmt.Errorf("pdf: %w", err)
		}
		log.Info("quote exported", "format", "pdf", "path", opts.pdfPath)
		written = append(written, opts.pdfPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportQuoteXLSX(opts.xlsxPath, q); err != nil {
			return written, fmt.Errorf("xlsx: %w", err)
		}
		log.Info("quote exported", "format", "xlsx", "path", opts.xlsxPath)
		written = append(written, opts.xlsxPath)
	}
	return written, nil
}

// serveMetrics exposes the collector on addr and blocks until interrupted.
func serveMetrics(addr string, collector *observability.LayoutCollector, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server exited", "error", err)
		}
	}()
	log.Info("serving Prometheus metrics", "addr", addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
