package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"etlcli/internal/config"
	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// PostgresHandler reads and writes datasets as PostgreSQL tables. The
// source and destination strings are table names. Writes create the
// table when missing, with column types derived from the dataset's
// column kinds, and append rows to it.
type PostgresHandler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresHandler connects to the database and verifies the
// connection with a ping.
func NewPostgresHandler(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*PostgresHandler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.NewStorageError("failed to parse database config", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.NewStorageError("failed to create connection pool", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError("failed to ping database", err)
	}

	return &PostgresHandler{
		pool:   pool,
		logger: logger.With("component", "postgres_store"),
	}, nil
}

// Close releases the connection pool
func (h *PostgresHandler) Close() {
	h.pool.Close()
}

// Read loads every row of the named table
func (h *PostgresHandler) Read(ctx context.Context, source string) (*dataset.Dataset, error) {
	h.logger.InfoContext(ctx, "Reading table", slog.String("table", source))

	query := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{source}.Sanitize())
	rows, err := h.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read table %s", source), err)
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	columns := make([]dataset.Column, len(descriptions))
	for i, fd := range descriptions {
		columns[i] = dataset.Column{Name: fd.Name, Kind: kindForOID(fd.DataTypeOID)}
	}

	d := dataset.New(columns)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to scan row from table %s", source), err)
		}
		cells := make([]dataset.Cell, len(values))
		for i, v := range values {
			cells[i] = pgCell(v)
		}
		if err := d.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read table %s", source), err)
	}

	h.logger.InfoContext(ctx, "Read table",
		slog.String("table", source),
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))
	return d, nil
}

// Write creates the destination table if needed and appends the
// dataset's rows to it.
func (h *PostgresHandler) Write(ctx context.Context, d *dataset.Dataset, dest string) error {
	columns := d.Columns()
	types := make([]string, len(columns))
	defs := make([]string, len(columns))
	for i, col := range columns {
		types[i] = h.columnType(d, i, col)
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{col.Name}.Sanitize(), types[i])
	}

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{dest}.Sanitize(), strings.Join(defs, ", "))
	if _, err := h.pool.Exec(ctx, create); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create table %s", dest), err)
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	copyRows := make([][]any, d.NumRows())
	for r := 0; r < d.NumRows(); r++ {
		row := make([]any, len(columns))
		for c := range columns {
			row[c] = pgValue(d.Cell(r, c), types[c])
		}
		copyRows[r] = row
	}

	inserted, err := h.pool.CopyFrom(ctx, pgx.Identifier{dest}, names, pgx.CopyFromRows(copyRows))
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to append to table %s", dest), err)
	}

	h.logger.InfoContext(ctx, "Appended rows to table",
		slog.String("table", dest),
		slog.Int64("rows", inserted))
	return nil
}

// columnType maps one column to a PostgreSQL type: categorical columns
// become TEXT, integer columns BIGINT and float columns DOUBLE
// PRECISION. An integer column that picked up fractional values from
// outlier capping is widened to DOUBLE PRECISION.
func (h *PostgresHandler) columnType(d *dataset.Dataset, idx int, col dataset.Column) string {
	switch col.Kind {
	case dataset.KindInteger:
		for r := 0; r < d.NumRows(); r++ {
			if v, ok := d.Cell(r, idx).Float(); ok && v != math.Trunc(v) {
				return "DOUBLE PRECISION"
			}
		}
		return "BIGINT"
	case dataset.KindFloat:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// kindForOID maps a PostgreSQL type OID to a column kind
func kindForOID(oid uint32) dataset.Kind {
	switch oid {
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID:
		return dataset.KindInteger
	case pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID:
		return dataset.KindFloat
	default:
		return dataset.KindCategorical
	}
}

// pgCell converts one scanned database value to a cell
func pgCell(v any) dataset.Cell {
	switch val := v.(type) {
	case nil:
		return dataset.Null()
	case int64:
		return dataset.Number(float64(val))
	case int32:
		return dataset.Number(float64(val))
	case int16:
		return dataset.Number(float64(val))
	case float64:
		return dataset.Number(val)
	case float32:
		return dataset.Number(float64(val))
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return dataset.Null()
		}
		return dataset.Number(f.Float64)
	case string:
		return dataset.Text(val)
	case []byte:
		return dataset.Text(string(val))
	case bool:
		if val {
			return dataset.Text("true")
		}
		return dataset.Text("false")
	case time.Time:
		return dataset.Text(val.Format(time.RFC3339))
	default:
		return dataset.Text(fmt.Sprint(val))
	}
}

// pgValue converts one cell to a value matching the created column type,
// so CopyFrom never has to guess an encoding.
func pgValue(c dataset.Cell, columnType string) any {
	if c.IsNull() {
		return nil
	}
	switch columnType {
	case "BIGINT":
		if v, ok := c.Float(); ok {
			return int64(v)
		}
	case "DOUBLE PRECISION":
		if v, ok := c.Float(); ok {
			return v
		}
	}
	return c.String()
}
