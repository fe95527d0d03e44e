package etl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/pkg/logger"
	"github.com/BartekS5/sensor-etl/pkg/models"
	"github.com/BartekS5/sensor-etl/pkg/utils"
)

const (
	CSVContentType  = "application/csv"
	objectKeyLayout = "20060102150405"
)

// ObjectPutter is the part of the S3 API the loader calls. *s3.S3 satisfies it.
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// ObjectStoreLoader writes records to a temporary CSV file, uploads it as one
// object and removes the file on every exit path.
type ObjectStoreLoader struct {
	Client  ObjectPutter
	Bucket  string
	TempDir string

	Now    func() time.Time
	Remove func(name string) error
}

func NewObjectStoreLoader(client ObjectPutter, cfg config.ObjectStoreConfig) *ObjectStoreLoader {
	return &ObjectStoreLoader{
		Client:  client,
		Bucket:  cfg.Bucket,
		TempDir: cfg.TempDir,
		Now:     time.Now,
		Remove:  os.Remove,
	}
}

// ObjectKey names the snapshot object. Keys have one-second resolution, so
// two runs in the same second write the same key.
func ObjectKey(t time.Time) string {
	return "sensor_data_" + t.Format(objectKeyLayout) + ".csv"
}

// WriteCSV writes the header row followed by one row per record, both in
// models.Columns order.
func WriteCSV(w io.Writer, records []models.SensorRecord) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for i, r := range records {
		cells, err := utils.FormatRow(r.Values())
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load runs three steps: write and close the temp file, upload it, remove
// it. Removal happens exactly once whatever the outcome. A rejected upload
// is logged and returned as a failed LoadResult with a nil error.
func (l *ObjectStoreLoader) Load(ctx context.Context, records []models.SensorRecord) (models.LoadResult, error) {
	res := models.LoadResult{Bucket: l.Bucket, Rows: len(records)}

	tmp, err := os.CreateTemp(l.TempDir, "sensor_data_*.csv")
	if err != nil {
		return res, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() {
		if rerr := l.remove(path); rerr != nil {
			logger.Warnf("Removing temporary file %s: %v", path, rerr)
		}
	}()

	if err := WriteCSV(tmp, records); err != nil {
		tmp.Close()
		return res, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return res, fmt.Errorf("close temp file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("reopen temp file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return res, fmt.Errorf("stat temp file: %w", err)
	}
	res.Bytes = info.Size()
	res.ObjectKey = ObjectKey(l.now())

	_, err = l.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(l.Bucket),
		Key:           aws.String(res.ObjectKey),
		Body:          f,
		ContentLength: aws.Int64(res.Bytes),
		ContentType:   aws.String(CSVContentType),
	})
	if err != nil {
		res.Status = models.StatusFailed
		res.Err = err
		logger.Errorf("Failed to upload temporary file to object store: %s", describeUploadError(err))
		return res, nil
	}

	res.Status = models.StatusUploaded
	logger.Infof("file uploaded successfully to bucket '%s' as %s (%d bytes).", l.Bucket, res.ObjectKey, res.Bytes)
	return res, nil
}

func (l *ObjectStoreLoader) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func (l *ObjectStoreLoader) remove(name string) error {
	if l.Remove == nil {
		return os.Remove(name)
	}
	return l.Remove(name)
}

func describeUploadError(err error) string {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return fmt.Sprintf("%s: %s", aerr.Code(), aerr.Message())
	}
	return err.Error()
}
