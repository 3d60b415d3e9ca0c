// Package pipeline turns gazette PDFs into records and hands them to storage.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"rpvscraper/internal/config"
	"rpvscraper/internal/extract"
	"rpvscraper/internal/model"
	"rpvscraper/internal/pdftext"
	"rpvscraper/internal/repository"
	"rpvscraper/internal/segment"
	"rpvscraper/internal/storage"
)

// Config holds the literals stamped on every record and the segmenting rules.
type Config struct {
	Segment      segment.Config
	Buckets      []extract.Bucket
	Counterparty string
	Status       string
}

// DefaultConfig returns the TJSP/INSS configuration.
func DefaultConfig() Config {
	return Config{
		Segment:      segment.DefaultConfig(),
		Buckets:      extract.DefaultBuckets(),
		Counterparty: model.CounterpartyINSS,
		Status:       model.StatusNew,
	}
}

// ConfigFromEnv overlays the environment-provided extraction settings on DefaultConfig.
func ConfigFromEnv(ec config.ExtractionConfig) Config {
	cfg := DefaultConfig()
	if ec.FooterLine != "" {
		cfg.Segment.Footer = ec.FooterLine
	}
	if ec.Counterparty != "" {
		cfg.Counterparty = ec.Counterparty
	}
	if ec.Status != "" {
		cfg.Status = ec.Status
	}
	return cfg
}

// Failure records a document that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a directory run.
type Result struct {
	Documents int
	Records   []model.Record
	Failed    []Failure
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Defaults to the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics enables prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// WithArchive uploads every successfully processed PDF to s.
func WithArchive(s storage.Storage) Option {
	return func(p *Pipeline) { p.archive = s }
}

// Pipeline processes documents one at a time. Apart from the metrics it
// keeps no state between documents.
type Pipeline struct {
	cfg     Config
	text    pdftext.Extractor
	store   repository.RecordRepository
	seg     *segment.Segmenter
	ext     *extract.Extractor
	log     *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
	archive storage.Storage
}

// New builds a Pipeline. store may be nil when Run is never called.
func New(cfg Config, text pdftext.Extractor, store repository.RecordRepository, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		text:   text,
		store:  store,
		seg:    segment.New(cfg.Segment),
		ext:    extract.New(cfg.Buckets...),
		log:    zap.L(),
		tracer: otel.Tracer("rpvscraper/internal/pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.String("component", "pipeline"))
	return p
}

// ProcessDocument extracts one record per relevant paragraph of the PDF at path.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) ([]model.Record, error) {
	filename := filepath.Base(path)
	ctx, span := p.tracer.Start(ctx, "pipeline.ProcessDocument",
		trace.WithAttributes(attribute.String("document.filename", filename)))
	defer span.End()

	pages, err := p.text.ExtractPages(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "text extraction failed")
		return nil, eris.Wrapf(err, "pipeline: extract %s", filename)
	}

	text := joinPages(pages)
	date := extract.FindAvailabilityDate(text)

	paragraphs := p.seg.Segment(text)
	records := make([]model.Record, 0, len(paragraphs))
	for _, par := range paragraphs {
		f := p.ext.Extract(par.Text)
		records = append(records, model.Record{
			SourceFilename:        filename,
			AvailabilityDate:      date,
			CaseNumber:            f.CaseNumber,
			Parties:               f.Parties,
			Attorneys:             f.Attorneys,
			PrincipalAmount:       f.Principal,
			DefaultInterestAmount: f.DefaultInterest,
			AttorneyFeeAmount:     f.AttorneyFee,
			ParagraphText:         par.Text,
			Counterparty:          p.cfg.Counterparty,
			Status:                p.cfg.Status,
		})
	}

	span.SetAttributes(
		attribute.Int("document.pages", len(pages)),
		attribute.Int("document.records", len(records)),
	)
	return records, nil
}

// joinPages concatenates non-empty pages with a newline.
func joinPages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, pg := range pages {
		if pg != "" {
			nonEmpty = append(nonEmpty, pg)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// ListPDFs returns the .pdf files directly under dir sorted by name.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: list %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// ProcessDirectory processes every PDF in dir sequentially. A failing document
// is logged, counted and skipped. Cancellation is checked between documents.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string) (*Result, error) {
	paths, err := ListPDFs(dir)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, eris.Wrap(err, "pipeline: cancelled")
		}

		records, err := p.ProcessDocument(ctx, path)
		if err != nil {
			p.log.Warn("document_failed", zap.String("path", path), zap.Error(err))
			p.metrics.documentDone(outcomeFailed)
			res.Failed = append(res.Failed, Failure{Path: path, Err: err})
			continue
		}

		p.log.Info("document_processed",
			zap.String("path", path),
			zap.Int("records", len(records)),
		)
		p.metrics.documentDone(outcomeOK)
		p.metrics.recordsExtracted(len(records))
		res.Documents++
		res.Records = append(res.Records, records...)

		if p.archive != nil {
			p.archiveDocument(ctx, path, len(records))
		}
	}
	return res, nil
}

func (p *Pipeline) archiveDocument(ctx context.Context, path string, records int) {
	key := storage.GazetteKey(path)
	f, err := os.Open(path)
	if err != nil {
		p.log.Warn("archive_failed", zap.String("key", key), zap.Error(err))
		return
	}
	defer f.Close()

	size := int64(-1)
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	_, err = p.archive.Put(ctx, key, f, storage.PutOptions{
		Size:        size,
		ContentType: "application/pdf",
		Metadata:    map[string]string{"records": strconv.Itoa(records)},
	})
	if err != nil {
		p.log.Warn("archive_failed", zap.String("key", key), zap.Error(err))
		return
	}
	p.log.Debug("document_archived", zap.String("key", key))
}

// Run processes dir and persists every record in a single batch.
// Nothing is written when no record was extracted.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Result, error) {
	res, err := p.ProcessDirectory(ctx, dir)
	if err != nil {
		return res, err
	}

	p.log.Info("directory_processed",
		zap.String("dir", dir),
		zap.Int("documents", res.Documents),
		zap.Int("failed", len(res.Failed)),
		zap.Int("records", len(res.Records)),
	)
	if len(res.Records) == 0 {
		return res, nil
	}

	if err := p.store.InsertBatch(ctx, res.Records); err != nil {
		return res, eris.Wrap(err, "pipeline: persist records")
	}
	p.log.Info("records_persisted", zap.Int("records", len(res.Records)))
	return res, nil
}
