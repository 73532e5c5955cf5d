package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"parkcli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteDataset writes the unified citation dataset with the canonical
// 14-column header.
func (w *CSVWriter) WriteDataset(path string, records []domain.TicketRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Fields())
	}
	return w.write(path, domain.ColumnNames(), rows)
}

// WriteFrequencyTable writes the time-of-day description counts, one
// row per bucket and one column per distinct description.
func (w *CSVWriter) WriteFrequencyTable(path string, table domain.DescriptionFrequencyTable) error {
	header := append([]string{"Bucket"}, table.Descriptions...)

	rows := make([][]string, 0, 3)
	for _, bucket := range domain.TimeBuckets() {
		row := make([]string, 0, len(header))
		row = append(row, string(bucket))
		for _, d := range table.Descriptions {
			row = append(row, fmt.Sprintf("%d", table.Count(bucket, d)))
		}
		rows = append(rows, row)
	}

	return w.write(path, header, rows)
}

// WritePlateFormats writes the plate-format distribution in category
// display order.
func (w *CSVWriter) WritePlateFormats(path string, dist domain.PlateFormatDistribution) error {
	rows := make([][]string, 0, len(dist))
	for _, format := range domain.PlateFormats() {
		rows = append(rows, []string{string(format), fmt.Sprintf("%d", dist[format])})
	}
	return w.write(path, []string{"Format", "Count"}, rows)
}

// write creates the file (and its directory) and writes header + rows.
func (w *CSVWriter) write(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.logger.Info("wrote CSV file",
		slog.String("path", path),
		slog.Int("rows", len(rows)))

	return writer.Error()
}
