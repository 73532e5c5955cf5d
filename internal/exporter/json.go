package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"parkcli/pkg/contracts/domain"
)

// ReportBundle is the JSON shape bundling all three aggregates for one
// run, plus generation metadata.
type ReportBundle struct {
	GeneratedAt  string                            `json:"generated_at"`
	Summary      domain.DatasetSummary             `json:"summary"`
	TimeOfDay    domain.DescriptionFrequencyTable  `json:"time_of_day"`
	CommonMake   string                            `json:"common_out_of_state_make"`
	PlateFormats domain.PlateFormatDistribution    `json:"plate_formats"`
}

// JSONWriter writes the aggregate report bundle to disk.
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger.With(slog.String("component", "json_writer"))}
}

// WriteBundle writes the report bundle as indented JSON, stamping the
// generation time.
func (w *JSONWriter) WriteBundle(path string, bundle ReportBundle) error {
	if bundle.GeneratedAt == "" {
		bundle.GeneratedAt = time.Now().Format(time.RFC3339)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return fmt.Errorf("failed to encode report bundle: %w", err)
	}

	w.logger.Info("wrote JSON report bundle", slog.String("path", path))

	return nil
}
