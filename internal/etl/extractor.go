package etl

import (
	"context"
	"fmt"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/pkg/logger"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

// SelectAllQuery reads the whole table. There is no ORDER BY; rows come
// back in whatever order the database yields them.
const SelectAllQuery = "SELECT * FROM sensor_data;"

// RowSource is one open connection to the source database.
type RowSource interface {
	QueryRows(ctx context.Context, query string) ([]models.RawRow, error)
	Close(ctx context.Context) error
}

// Connector opens a RowSource for the given connection parameters.
type Connector func(ctx context.Context, p config.ConnParams) (RowSource, error)

// SQLExtractor reads every row of sensor_data over a single connection.
type SQLExtractor struct {
	Connect Connector
	Params  config.ConnParams
}

func NewExtractor(connect Connector, params config.ConnParams) *SQLExtractor {
	return &SQLExtractor{Connect: connect, Params: params}
}

// Extract connects, fetches the full result set into memory and closes the
// connection whether or not the query succeeded. Nothing is retried.
func (e *SQLExtractor) Extract(ctx context.Context) ([]models.RawRow, error) {
	src, err := e.Connect(ctx, e.Params)
	if err != nil {
		return nil, fmt.Errorf("connect to source: %w", err)
	}
	defer func() {
		if cerr := src.Close(context.Background()); cerr != nil {
			logger.Warnf("Closing source connection: %v", cerr)
		}
	}()

	rows, err := src.QueryRows(ctx, SelectAllQuery)
	if err != nil {
		return nil, fmt.Errorf("query sensor_data: %w", err)
	}
	return rows, nil
}
