package etl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BartekS5/sensor-etl/internal/metrics"
	"github.com/BartekS5/sensor-etl/pkg/logger"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

// Pipeline runs one extract -> transform -> load pass.
type Pipeline struct {
	Extractor Extractor
	Loader    Loader
	Manifest  ManifestRecorder
	Metrics   metrics.Backend
	DryRun    bool

	newRunID func() string
}

type Option func(*Pipeline)

func WithManifest(m ManifestRecorder) Option {
	return func(p *Pipeline) { p.Manifest = m }
}

func WithMetrics(b metrics.Backend) Option {
	return func(p *Pipeline) { p.Metrics = b }
}

// WithDryRun extracts and transforms but never calls the loader.
func WithDryRun(dryRun bool) Option {
	return func(p *Pipeline) { p.DryRun = dryRun }
}

func NewPipeline(ext Extractor, loader Loader, opts ...Option) *Pipeline {
	p := &Pipeline{
		Extractor: ext,
		Loader:    loader,
		Metrics:   metrics.Nop(),
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs a single pass. Extraction, transformation and local load
// errors are returned. A rejected upload is not an error: it comes back as
// a LoadResult with Status failed.
func (p *Pipeline) Run(ctx context.Context) (res models.LoadResult, err error) {
	runID := p.newRunID()
	log := logger.With("run_id", runID)
	started := time.Now()

	log.Info().Bool("dry_run", p.DryRun).Msg("Starting snapshot run")

	defer func() {
		if err != nil {
			res.Status = models.StatusFailed
			res.Err = err
		}
		p.recordManifest(ctx, runID, res, started)
		if ferr := p.Metrics.Flush(); ferr != nil {
			log.Warn().Err(ferr).Msg("Pushing metrics failed")
		}
	}()

	// 1. Extract
	stepStart := time.Now()
	rows, err := p.Extractor.Extract(ctx)
	metrics.ObserveStep(p.Metrics, "extract", stepStart, err)
	if err != nil {
		log.Error().Err(err).Msg("Extraction failed")
		return res, err
	}
	p.countRecords("extracted", len(rows))
	log.Info().Int("rows", len(rows)).Msg("Extracted rows from sensor_data")

	// 2. Transform
	stepStart = time.Now()
	records, err := Transform(rows)
	metrics.ObserveStep(p.Metrics, "transform", stepStart, err)
	if err != nil {
		log.Error().Err(err).Msg("Transformation failed")
		return res, err
	}
	p.countRecords("transformed", len(records))

	// 3. Load (skipped on dry run)
	if p.DryRun {
		log.Info().Msgf("[DRY RUN] Would load %d records", len(records))
		return models.LoadResult{Rows: len(records), Status: models.StatusSkipped}, nil
	}

	stepStart = time.Now()
	res, err = p.Loader.Load(ctx, records)
	stepErr := err
	if stepErr == nil {
		stepErr = res.Err
	}
	metrics.ObserveStep(p.Metrics, "load", stepStart, stepErr)
	if err != nil {
		log.Error().Err(err).Msg("Loading failed")
		return res, err
	}

	if res.Failed() {
		log.Warn().Str("object_key", res.ObjectKey).Msg("Snapshot run finished without uploading")
		return res, nil
	}

	p.countRecords("uploaded", res.Rows)
	p.Metrics.IncCounter(metrics.BytesTotal, float64(res.Bytes), nil)
	log.Info().
		Str("bucket", res.Bucket).
		Str("object_key", res.ObjectKey).
		Int64("bytes", res.Bytes).
		Dur("elapsed", time.Since(started)).
		Msg("Snapshot run finished")
	return res, nil
}

func (p *Pipeline) countRecords(kind string, n int) {
	p.Metrics.IncCounter(metrics.RecordsTotal, float64(n), metrics.Labels{"kind": kind})
}

// recordManifest never fails the run; the object is already stored.
func (p *Pipeline) recordManifest(ctx context.Context, runID string, res models.LoadResult, started time.Time) {
	if p.Manifest == nil {
		return
	}
	m := models.NewSnapshotManifest(runID, res, started, time.Now())
	if err := p.Manifest.Record(context.WithoutCancel(ctx), m); err != nil {
		logger.Warnf("Recording manifest failed: %v", err)
	}
}
