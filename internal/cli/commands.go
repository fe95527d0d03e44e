package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/spf13/cobra"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/internal/etl"
	"github.com/BartekS5/sensor-etl/pkg/database"
)

type bucketHeader interface {
	HeadBucketWithContext(ctx aws.Context, input *s3.HeadBucketInput, opts ...request.Option) (*s3.HeadBucketOutput, error)
}

// NewCheckCmd creates the "check" sub-command, which verifies that the
// source database and the bucket are reachable without moving any data.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the source database and the bucket are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			s3Client, err := database.NewS3Client(cfg.ObjectStore)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cfg, etl.ConnectorFor(cfg.Source), s3Client)
		},
	}
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, connect etl.Connector, bucket bucketHeader) error {
	failed := 0

	params := cfg.ConnParams()
	if err := checkSource(ctx, connect, params); err != nil {
		fmt.Fprintf(out, "source   FAIL  %s (%s): %v\n", cfg.Source.Driver, params.Host, err)
		failed++
	} else {
		fmt.Fprintf(out, "source   OK    %s (%s)\n", cfg.Source.Driver, params.Host)
	}

	if err := checkBucket(ctx, bucket, cfg.ObjectStore.Bucket); err != nil {
		fmt.Fprintf(out, "bucket   FAIL  %s at %s: %v\n", cfg.ObjectStore.Bucket, cfg.ObjectStore.Endpoint, err)
		failed++
	} else {
		fmt.Fprintf(out, "bucket   OK    %s at %s\n", cfg.ObjectStore.Bucket, cfg.ObjectStore.Endpoint)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func checkSource(ctx context.Context, connect etl.Connector, params config.ConnParams) error {
	src, err := connect(ctx, params)
	if err != nil {
		return err
	}
	return src.Close(ctx)
}

func checkBucket(ctx context.Context, client bucketHeader, bucket string) error {
	_, err := client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	return err
}
