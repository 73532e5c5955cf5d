package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"parkcli/internal/config"
	"parkcli/internal/dataprocessing"
	apierrors "parkcli/internal/errors"
	"parkcli/internal/exporter"
	"parkcli/internal/files"
	"parkcli/internal/infrastructure"
	"parkcli/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	inDir := flag.String("in", "", "input directory for citation export files (defaults to configured ingest dir)")
	outDir := flag.String("out", "", "output directory for report files (defaults to configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *inDir != "" {
		cfg.Ingest.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Ingest.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	logger.InfoContext(ctx, "Starting citation report processing",
		slog.String("input_dir", cfg.Ingest.InputDir),
		slog.String("output_dir", cfg.Ingest.OutputDir))

	if err := os.MkdirAll(cfg.Ingest.OutputDir, 0755); err != nil {
		logger.ErrorContext(ctx, "Error creating output directory", slog.String("error", err.Error()))
		return 1
	}

	svc := services.NewReportService(cfg, logger, nil)

	// Positional args name explicit workbooks and bypass discovery.
	if paths := flag.Args(); len(paths) > 0 {
		fmt.Printf("Found %d export files\n", len(paths))

		loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{
			HeaderRows:  cfg.Ingest.HeaderRows,
			FooterSheet: cfg.Ingest.FooterSheet,
		})
		result, err := loader.LoadFiles(ctx, paths)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load export files", slog.String("error", err.Error()))
			return 1
		}
		svc.LoadRecords(result.Records, result.FilesLoaded)
	} else {
		discovery := files.NewDiscovery("")
		found, err := discovery.FindExportFiles(cfg.Ingest.InputDir)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to scan input directory", slog.String("error", err.Error()))
			return 1
		}
		fmt.Printf("Found %d export files\n", len(found))

		if err := svc.Load(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to load citation dataset", slog.String("error", err.Error()))
			return 1
		}
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Dataset unavailable", slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("Loaded %d citations from %d files\n", summary.Rows, summary.Files)

	timeOfDay, err := svc.TimeOfDay(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build time-of-day report", slog.String("error", err.Error()))
		return 1
	}

	plateFormats, err := svc.PlateFormats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build plate format report", slog.String("error", err.Error()))
		return 1
	}

	// An empty out-of-state filter is reportable without the make; the
	// other aggregates still get written.
	commonMake, err := svc.CommonMake(ctx)
	if err != nil {
		if !apierrors.IsType(err, apierrors.ErrTypeEmptyFilter) {
			logger.ErrorContext(ctx, "Failed to build common make report", slog.String("error", err.Error()))
			return 1
		}
		logger.WarnContext(ctx, "No citations matched the out-of-state filter",
			slog.String("state", cfg.Analysis.OutOfStateCode))
		commonMake = ""
	}

	csvWriter := exporter.NewCSVWriter(logger)
	jsonWriter := exporter.NewJSONWriter(logger)

	combinedPath := filepath.Join(cfg.Ingest.OutputDir, "combined_citations.csv")
	records, err := svc.Records(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Dataset unavailable", slog.String("error", err.Error()))
		return 1
	}
	if err := csvWriter.WriteDataset(combinedPath, records); err != nil {
		logger.ErrorContext(ctx, "Failed to write combined CSV", slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("Wrote combined dataset: %s\n", combinedPath)

	frequencyPath := filepath.Join(cfg.Ingest.OutputDir, "time_of_day_frequency.csv")
	if err := csvWriter.WriteFrequencyTable(frequencyPath, timeOfDay); err != nil {
		logger.ErrorContext(ctx, "Failed to write frequency table CSV", slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("Wrote time-of-day frequency table: %s\n", frequencyPath)

	platesPath := filepath.Join(cfg.Ingest.OutputDir, "plate_formats.csv")
	if err := csvWriter.WritePlateFormats(platesPath, plateFormats); err != nil {
		logger.ErrorContext(ctx, "Failed to write plate formats CSV", slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("Wrote plate format distribution: %s\n", platesPath)

	bundlePath := filepath.Join(cfg.Ingest.OutputDir, "reports.json")
	bundle := exporter.ReportBundle{
		Summary:      summary,
		TimeOfDay:    timeOfDay,
		CommonMake:   commonMake,
		PlateFormats: plateFormats,
	}
	if err := jsonWriter.WriteBundle(bundlePath, bundle); err != nil {
		logger.ErrorContext(ctx, "Failed to write report bundle", slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("Wrote report bundle: %s\n", bundlePath)

	logger.InfoContext(ctx, "Processing complete",
		slog.Int("rows", summary.Rows),
		slog.Int("files", summary.Files),
		slog.String("common_out_of_state_make", commonMake))

	return 0
}
