// Package exporter writes the normalized citation dataset and its
// aggregate reports to disk.
//
// CSVWriter handles the combined dataset, the time-of-day frequency
// table, and the plate-format distribution. JSONWriter bundles all
// three aggregates into a single machine-readable report.
package exporter
