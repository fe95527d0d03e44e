package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/internal/etl"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

type closeOnlySource struct{ closed int }

func (s *closeOnlySource) QueryRows(context.Context, string) ([]models.RawRow, error) {
	return nil, nil
}

func (s *closeOnlySource) Close(context.Context) error {
	s.closed++
	return nil
}

type fakeBucket struct {
	bucket string
	err    error
}

func (f *fakeBucket) HeadBucketWithContext(_ aws.Context, in *s3.HeadBucketInput, _ ...request.Option) (*s3.HeadBucketOutput, error) {
	f.bucket = aws.StringValue(in.Bucket)
	return &s3.HeadBucketOutput{}, f.err
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "sensor-etl", root.Use)

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.NotNil(t, run.Flags().Lookup("dry-run"))
	assert.NotNil(t, run.Flags().Lookup("strict"))

	check, _, err := root.Find([]string{"check"})
	require.NoError(t, err)
	assert.Equal(t, "check", check.Use)
}

func TestUploadOutcome(t *testing.T) {
	failed := models.LoadResult{Bucket: "b", ObjectKey: "k", Status: models.StatusFailed, Err: errors.New("AccessDenied")}

	assert.NoError(t, uploadOutcome(failed, false))
	err := uploadOutcome(failed, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")

	assert.NoError(t, uploadOutcome(models.LoadResult{Status: models.StatusUploaded}, true))
	assert.NoError(t, uploadOutcome(models.LoadResult{Status: models.StatusSkipped}, true))
}

func TestRunCheckAllOK(t *testing.T) {
	cfg := config.Default()
	src := &closeOnlySource{}
	var gotParams config.ConnParams
	connect := func(_ context.Context, p config.ConnParams) (etl.RowSource, error) {
		gotParams = p
		return src, nil
	}
	bucket := &fakeBucket{}

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &out, cfg, connect, bucket))

	assert.Equal(t, "localhost", gotParams.Host)
	assert.Equal(t, 1, src.closed)
	assert.Equal(t, "datalake-ci-cd-test", bucket.bucket)
	assert.Contains(t, out.String(), "source   OK")
	assert.Contains(t, out.String(), "bucket   OK")
}

func TestRunCheckReportsFailures(t *testing.T) {
	cfg := config.Default()
	connect := func(context.Context, config.ConnParams) (etl.RowSource, error) {
		return nil, errors.New("connection refused")
	}
	bucket := &fakeBucket{err: awserr.New("NotFound", "not found", nil)}

	var out bytes.Buffer
	err := runCheck(context.Background(), &out, cfg, connect, bucket)
	require.EqualError(t, err, "2 check(s) failed")
	assert.Contains(t, out.String(), "source   FAIL")
	assert.Contains(t, out.String(), "bucket   FAIL")
}
