package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jackc/pgx/v5"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/pkg/logger"
)

// PostgresURL builds a connection URL from discrete parameters.
func PostgresURL(p config.ConnParams) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.Database,
	}
	if p.Timeout > 0 {
		q := url.Values{}
		q.Set("connect_timeout", strconv.Itoa(int(p.Timeout.Seconds())))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ConnectPostgres opens a single connection. Callers close it.
func ConnectPostgres(ctx context.Context, p config.ConnParams) (*pgx.Conn, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	conn, err := pgx.Connect(ctx, PostgresURL(p))
	if err != nil {
		return nil, fmt.Errorf("error connecting to Postgres at %s:%d: %w", p.Host, p.Port, err)
	}

	logger.Infof("Connected to Postgres at %s:%d/%s", p.Host, p.Port, p.Database)
	return conn, nil
}

// ConnectSQL opens a database/sql handle for the sqlserver or sqlite driver.
func ConnectSQL(driver, connString string) (*sql.DB, error) {
	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s database (ping failed): %w", driver, err)
	}

	logger.Infof("Connected to %s database", driver)
	return db, nil
}

func ConnectMongo(connString string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("error creating MongoDB client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, fmt.Errorf("error connecting to MongoDB (ping failed): %w", err)
	}

	logger.Info("Connected to MongoDB")
	return client, nil
}

// NewS3Client builds an S3 client for an S3-compatible endpoint such as
// MinIO. Path-style addressing is forced since MinIO buckets are not
// resolvable as virtual hosts.
func NewS3Client(c config.ObjectStoreConfig) (*s3.S3, error) {
	sess, err := session.NewSession(S3Config(c))
	if err != nil {
		return nil, fmt.Errorf("error creating object store session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Config translates the object store settings to an aws.Config.
func S3Config(c config.ObjectStoreConfig) *aws.Config {
	return &aws.Config{
		Endpoint:         aws.String(c.Endpoint),
		Region:           aws.String(c.Region),
		Credentials:      credentials.NewStaticCredentials(c.AccessKey, c.SecretKey, ""),
		DisableSSL:       aws.Bool(!c.Secure),
		S3ForcePathStyle: aws.Bool(true),
	}
}
