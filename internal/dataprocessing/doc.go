// Package dataprocessing loads municipal parking-citation spreadsheet
// exports and computes the descriptive aggregates served by parkcli.
//
// The Loader reads every sheet of each export, strips the fixed
// boilerplate header rows (and the known footer row on the one sheet
// that carries it), assigns the canonical 14-column schema positionally,
// and concatenates everything into a single flat dataset. Files that
// contribute nothing are skipped with a diagnostic; a run where no file
// contributes anything fails outright.
//
// The Analyzer consumes the loaded dataset read-only and produces three
// independent aggregates: citation-description frequency per time-of-day
// bucket, the most common vehicle make among out-of-state plates, and a
// plate-format distribution for in-state plates.
package dataprocessing
