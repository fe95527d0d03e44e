package etl

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/BartekS5/sensor-etl/internal/config"
	"github.com/BartekS5/sensor-etl/pkg/database"
	"github.com/BartekS5/sensor-etl/pkg/models"
)

// PgConn is the subset of *pgx.Conn the Postgres source needs.
type PgConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

type pgxSource struct{ conn PgConn }

func NewPgxSource(conn PgConn) RowSource {
	return &pgxSource{conn: conn}
}

func (p *pgxSource) QueryRows(ctx context.Context, query string) ([]models.RawRow, error) {
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RawRow
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, models.RawRow(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pgxSource) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}

// PostgresConnector dials Postgres with pgx.
func PostgresConnector(ctx context.Context, p config.ConnParams) (RowSource, error) {
	conn, err := database.ConnectPostgres(ctx, p)
	if err != nil {
		return nil, err
	}
	return NewPgxSource(conn), nil
}

// sqlSource reads through database/sql; used for sqlserver and sqlite.
type sqlSource struct{ db *sql.DB }

func NewSQLSource(db *sql.DB) RowSource {
	return &sqlSource{db: db}
}

func (s *sqlSource) QueryRows(ctx context.Context, query string) ([]models.RawRow, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []models.RawRow
	for rows.Next() {
		columns := make([]interface{}, len(cols))
		columnPointers := make([]interface{}, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}
		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(models.RawRow, len(cols))
		for i, val := range columns {
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = val
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *sqlSource) Close(context.Context) error {
	return s.db.Close()
}

// SQLConnector opens a database/sql source from a DSN. The discrete
// connection parameters do not apply; the DSN already names the host.
func SQLConnector(driver, dsn string) Connector {
	return func(ctx context.Context, _ config.ConnParams) (RowSource, error) {
		db, err := database.ConnectSQL(driver, dsn)
		if err != nil {
			return nil, err
		}
		return NewSQLSource(db), nil
	}
}

// ConnectorFor picks the connector for the configured driver.
func ConnectorFor(c config.SourceConfig) Connector {
	switch c.Driver {
	case config.DriverSQLServer, config.DriverSQLite:
		return SQLConnector(c.Driver, c.DSN)
	default:
		return PostgresConnector
	}
}
