// Package cleaning implements the statistical data-cleaning pipeline:
// outlier capping, missing-value imputation, duplicate-row removal and
// correlated-feature pruning, applied to a dataset in that fixed order.
//
// # Architecture
//
// Each pass is a Stage. The Pipeline classifies columns once at entry
// and runs the stages in sequence, each one mutating the dataset it
// receives and handing it to the next.
//
// # Error Handling
//
// The pipeline is best-effort, not transactional. A statistic that
// cannot be computed for one column (all values missing) or a requested
// column that is absent from the dataset is logged and skipped; the pass
// continues with the remaining columns and the pipeline continues with
// the remaining stages. Only configuration errors, such as an unknown
// fill strategy, abort the run. Callers who need to know whether every
// column was cleaned must inspect the logs.
//
// # Usage
//
//	pipeline, err := cleaning.NewPipeline(cleaning.DefaultOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	cleaned, err := pipeline.Run(ctx, ds)
//
// # Testing
//
// Use table-driven tests when adding new functionality.
package cleaning
