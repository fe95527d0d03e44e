package etl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/pkg/logger"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

type documentInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoManifestRecorder appends one document per run to a collection, so
// uploaded objects can be traced back to the run that produced them.
type MongoManifestRecorder struct {
	Coll    documentInserter
	Timeout time.Duration
}

func NewMongoManifestRecorder(client *mongo.Client, cfg config.ManifestConfig) *MongoManifestRecorder {
	return &MongoManifestRecorder{
		Coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		Timeout: 10 * time.Second,
	}
}

func (m *MongoManifestRecorder) Record(ctx context.Context, manifest models.SnapshotManifest) error {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	res, err := m.Coll.InsertOne(ctx, manifest)
	if err != nil {
		return fmt.Errorf("insert manifest for run %s: %w", manifest.RunID, err)
	}
	logger.Infof("Manifest recorded: run %s, id %v", manifest.RunID, res.InsertedID)
	return nil
}
