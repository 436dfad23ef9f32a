package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"catreport/internal/config"
	"catreport/internal/core/apperror"
	appctx "catreport/internal/core/context"
	"catreport/internal/domain/reports"
	"catreport/internal/infrastructure/csvout"
	"catreport/pkg/logger"
)

// options are the command line settings. Flags only override the loaded
// configuration when they were set explicitly.
type options struct {
	configPath string
	outDir     string
	prefix     string
	dateColumn int
	logLevel   string
	dev        bool

	// now is replaced in tests.
	now func() time.Time
}

func newRootCmd() *cobra.Command {
	return newCommand(&options{now: time.Now})
}

func newCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catreport [flags] <export.xml>",
		Short: "Generate a CSV product report from a catalog export",
		Long: `catreport reads a catalog export (plain, .gz or .zst XML), joins products
with their metadata and category paths, and writes every product linked from
the catalog to <prefix>_YYYY_MM_DD.csv, most recent expiry date first.

Arguments are joined with spaces, so unquoted paths containing spaces work.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "directory to write the report to")
	f.StringVar(&opts.prefix, "prefix", csvout.DefaultPrefix, "report file name prefix")
	f.IntVar(&opts.dateColumn, "date-column", reports.DefaultDateColumn, "index of the DD/MM/YYYY column to sort by")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.BoolVar(&opts.dev, "dev", false, "human-readable development logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) == 0 {
		return apperror.NewMissingInput()
	}
	input := strings.Join(args, " ")

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return apperror.NewInternal(err)
	}
	defer log.Sync()

	pipeline, err := cfg.Pipeline()
	if err != nil {
		return err
	}

	rc := appctx.NewRunContext(input)
	rc.Output = filepath.Join(cfg.Report.OutputDir, csvout.FileName(cfg.Report.Prefix, opts.now()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = appctx.WithRun(ctx, rc)
	ctx = logger.WithLogger(ctx, log)
	log = log.WithContext(ctx)

	log.Infow("starting report run", "steps", pipeline.Names(), "columns", len(cfg.Report.Columns))

	svc := reports.NewService(reports.ServiceConfig{
		Columns:  cfg.Report.Columns,
		Pipeline: pipeline,
	})

	res, err := svc.GenerateFromFile(ctx, input)
	if err != nil {
		logger.Error(ctx, "report generation failed", "error", err)
		return err
	}

	logger.Info(ctx, "writing report", "path", rc.Output)
	if err := csvout.WriteFile(rc.Output, res.Report.Table()); err != nil {
		return apperror.NewIO("write report", rc.Output, err)
	}

	log.Infow("done",
		"path", rc.Output,
		"rows", len(res.Report.Rows),
		"products", res.Summary.Products,
		"current_products", res.Summary.CurrentProducts,
		"orphan_entries", res.Summary.OrphanEntries,
		"duration", res.Summary.Duration,
	)
	return nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("out-dir") {
		cfg.Report.OutputDir = opts.outDir
	}
	if f.Changed("prefix") {
		cfg.Report.Prefix = opts.prefix
	}
	if f.Changed("date-column") {
		cfg.Report.DateColumn = opts.dateColumn
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if f.Changed("dev") {
		cfg.Logging.Development = opts.dev
	}
}
