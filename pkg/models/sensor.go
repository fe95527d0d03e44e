package models

import (
	"fmt"
	"time"
)

// Columns is the fixed column order of the sensor_data table and of the
// generated CSV. Rows are mapped by position, never by column name.
var Columns = []string{"id", "sensor_id", "temperature", "humidity", "recorded_at"}

// RawRow is one positional row as returned by the source database.
type RawRow []interface{}

// SensorRecord is a RawRow with named fields. Values are carried as-is
// from the source; nothing is coerced or validated.
type SensorRecord struct {
	ID          interface{} `json:"id" bson:"id"`
	SensorID    interface{} `json:"sensor_id" bson:"sensor_id"`
	Temperature interface{} `json:"temperature" bson:"temperature"`
	Humidity    interface{} `json:"humidity" bson:"humidity"`
	RecordedAt  interface{} `json:"recorded_at" bson:"recorded_at"`
}

// Values returns the record fields in Columns order.
func (r SensorRecord) Values() []interface{} {
	return []interface{}{r.ID, r.SensorID, r.Temperature, r.Humidity, r.RecordedAt}
}

// ToMap returns the record keyed by column name.
func (r SensorRecord) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(Columns))
	for i, v := range r.Values() {
		m[Columns[i]] = v
	}
	return m
}

// DeploymentTarget selects which database host the extractor dials.
type DeploymentTarget string

const (
	TargetLocal     DeploymentTarget = "local"
	TargetContainer DeploymentTarget = "container"
)

func ParseDeploymentTarget(s string) (DeploymentTarget, error) {
	switch DeploymentTarget(s) {
	case TargetLocal, TargetContainer:
		return DeploymentTarget(s), nil
	default:
		return "", fmt.Errorf("unknown deployment target %q", s)
	}
}

// LoadStatus is the outcome of a single load attempt.
type LoadStatus string

const (
	StatusUploaded LoadStatus = "uploaded"
	StatusFailed   LoadStatus = "failed"
	StatusSkipped  LoadStatus = "skipped"
)

// LoadResult describes what happened to one snapshot object. A failed
// upload is reported here rather than as an error so the caller decides
// whether it is fatal.
type LoadResult struct {
	Bucket    string
	ObjectKey string
	Rows      int
	Bytes     int64
	Status    LoadStatus
	Err       error
}

// Failed reports whether the object store rejected the upload.
func (r LoadResult) Failed() bool {
	return r.Status == StatusFailed
}

// SnapshotManifest is the ledger entry written after each run.
type SnapshotManifest struct {
	RunID      string     `bson:"run_id"`
	Bucket     string     `bson:"bucket"`
	ObjectKey  string     `bson:"object_key"`
	Rows       int        `bson:"rows"`
	Bytes      int64      `bson:"bytes"`
	Status     LoadStatus `bson:"status"`
	Error      string     `bson:"error,omitempty"`
	StartedAt  time.Time  `bson:"started_at"`
	FinishedAt time.Time  `bson:"finished_at"`
}

// NewSnapshotManifest builds a ledger entry from a load result.
func NewSnapshotManifest(runID string, res LoadResult, started, finished time.Time) SnapshotManifest {
	m := SnapshotManifest{
		RunID:      runID,
		Bucket:     res.Bucket,
		ObjectKey:  res.ObjectKey,
		Rows:       res.Rows,
		Bytes:      res.Bytes,
		Status:     res.Status,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if res.Err != nil {
		m.Error = res.Err.Error()
	}
	return m
}
