package etl

import (
	"context"

	"github.com/BartekS5/sensor-etl/pkg/models"
)

type Extractor interface {
	Extract(ctx context.Context) ([]models.RawRow, error)
}

// Loader writes records to their destination. An upload the destination
// rejects is reported in the result; the error is for local failures.
type Loader interface {
	Load(ctx context.Context, records []models.SensorRecord) (models.LoadResult, error)
}

type ManifestRecorder interface {
	Record(ctx context.Context, m models.SnapshotManifest) error
}
