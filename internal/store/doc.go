// Package store provides the extraction and load collaborators of the
// ETL process: reading a dataset from a local file or a PostgreSQL
// table, and writing a cleaned dataset back out.
//
// Both sides share the DataHandler interface. LocalHandler dispatches on
// a closed set of file formats (csv, json, xlsx, parquet) and rejects
// anything else with an unsupported-format error. PostgresHandler maps
// dataset column kinds to PostgreSQL column types on write
// (categorical to TEXT, integer to BIGINT, float to DOUBLE PRECISION)
// and appends rows to the target table, creating it if necessary.
package store
