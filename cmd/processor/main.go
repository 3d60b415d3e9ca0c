package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rpvscraper/internal/config"
	"rpvscraper/internal/database"
	"rpvscraper/internal/database/migration"
	"rpvscraper/internal/otel"
	"rpvscraper/internal/pdftext"
	"rpvscraper/internal/pipeline"
	"rpvscraper/internal/repository/postgres"
	"rpvscraper/internal/storage"
)

type options struct {
	dir         string
	dryRun      bool
	skipMigrate bool
	registry    prometheus.Registerer
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := options{registry: prometheus.DefaultRegisterer}

	cmd := &cobra.Command{
		Use:   "processor",
		Short: "Extract RPV records from TJSP gazette PDFs",
		Long: `processor reads every PDF in a directory, extracts one record per
RPV paragraph paid by the INSS and stores all of them in PostgreSQL in a
single batch. Documents that cannot be read are logged and skipped.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitLogger(cfg.Log, cfg.Location()); err != nil {
				return err
			}
			logger := zap.L()
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, opts, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", cfg.Extraction.PDFDir, "directory containing gazette PDFs")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print records as JSON lines instead of storing them")
	cmd.Flags().BoolVar(&opts.skipMigrate, "skip-migrate", false, "do not create the documentos table")
	return cmd
}

func run(ctx context.Context, cfg *config.AppConfig, opts options, logger *zap.Logger, out io.Writer) error {
	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	pcfg := pipeline.ConfigFromEnv(cfg.Extraction)
	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(pipeline.NewMetrics(opts.registry)),
	}

	if opts.dryRun {
		p := pipeline.New(pcfg, pdftext.New(), nil, pipeOpts...)
		res, err := p.ProcessDirectory(ctx, opts.dir)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		for _, rec := range res.Records {
			if err := enc.Encode(rec); err != nil {
				return eris.Wrap(err, "write record")
			}
		}
		logger.Info("dry_run_done",
			zap.Int("documents", res.Documents),
			zap.Int("failed", len(res.Failed)),
			zap.Int("records", len(res.Records)),
		)
		return nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if !opts.skipMigrate {
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return err
		}
	}

	if cfg.MinIO.Enabled {
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		pipeOpts = append(pipeOpts, pipeline.WithArchive(store))
	}

	repo := postgres.NewRecordPostgres(db, cfg.Extraction.BatchSize)
	p := pipeline.New(pcfg, pdftext.New(), repo, pipeOpts...)
	res, err := p.Run(ctx, opts.dir)
	if err != nil {
		return err
	}
	if len(res.Failed) > 0 {
		logger.Warn("documents_skipped", zap.Int("failed", len(res.Failed)))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
