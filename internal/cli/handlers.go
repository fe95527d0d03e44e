package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/internal/etl"
	"github.com/BartekS5/sensor-etl/internal/metrics/prompush"
	"github.com/BartekS5/sensor-etl/pkg/database"
	"github.com/BartekS5/sensor-etl/pkg/logger"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

func runSnapshot(ctx context.Context, opts *RunOptions) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()

	s3Client, err := database.NewS3Client(cfg.ObjectStore)
	if err != nil {
		return err
	}

	extractor := etl.NewExtractor(etl.ConnectorFor(cfg.Source), cfg.ConnParams())
	loader := etl.NewObjectStoreLoader(s3Client, cfg.ObjectStore)
	pipelineOpts := []etl.Option{etl.WithDryRun(opts.DryRun)}

	if cfg.Manifest.MongoURI != "" {
		mongoClient, err := database.ConnectMongo(cfg.Manifest.MongoURI)
		if err != nil {
			logger.Warnf("Manifest ledger disabled: %v", err)
		} else {
			defer func() {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mongoClient.Disconnect(dctx)
			}()
			pipelineOpts = append(pipelineOpts, etl.WithManifest(etl.NewMongoManifestRecorder(mongoClient, cfg.Manifest)))
		}
	}

	if cfg.Metrics.PushgatewayURL != "" {
		backend, err := prompush.NewBackend(cfg.Metrics.Job, cfg.Metrics.PushgatewayURL)
		if err != nil {
			return err
		}
		pipelineOpts = append(pipelineOpts, etl.WithMetrics(backend))
	}

	logger.Infof("Starting snapshot of sensor_data (target %s, driver %s) into bucket %s",
		cfg.Target, cfg.Source.Driver, cfg.ObjectStore.Bucket)

	res, err := etl.NewPipeline(extractor, loader, pipelineOpts...).Run(ctx)
	if err != nil {
		return err
	}
	return uploadOutcome(res, opts.Strict)
}

// uploadOutcome decides whether a rejected upload fails the process. By
// default it does not; the failure has already been logged.
func uploadOutcome(res models.LoadResult, strict bool) error {
	if !res.Failed() || !strict {
		return nil
	}
	return fmt.Errorf("upload of %s to bucket %s failed: %w", res.ObjectKey, res.Bucket, res.Err)
}
