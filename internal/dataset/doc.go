// Package dataset provides the in-memory tabular data model exchanged
// between the extraction, cleaning and load phases of the ETL process.
//
// A Dataset is an ordered sequence of rows over a fixed set of named
// columns. Every cell is a nullable tagged value: missing, numeric or
// text. Each column carries a Kind (integer, float or categorical) that
// is declared by the reader or inferred from the cell values.
//
// Classification of columns into numeric and categorical sets happens
// once, at pipeline entry, via Classify; cleaning stages receive the
// resulting Classification and never re-infer it.
package dataset
