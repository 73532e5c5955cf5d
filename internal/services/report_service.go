package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"parkcli/internal/config"
	"parkcli/internal/dataprocessing"
	"parkcli/internal/errors"
	"parkcli/internal/files"
	"parkcli/internal/infrastructure"
	"parkcli/pkg/contracts/domain"
)

// ReportService loads the citation dataset once and serves the three
// descriptive aggregates over it. The dataset is immutable after Load;
// the aggregates are independent and read-only.
type ReportService struct {
	logger    *slog.Logger
	loader    *dataprocessing.Loader
	analyzer  *dataprocessing.Analyzer
	discovery *files.Discovery
	inputDir  string
	metrics   *infrastructure.Metrics

	mu      sync.RWMutex
	dataset []domain.TicketRecord
	summary domain.DatasetSummary
	loaded  bool
}

// NewReportService creates a report service for the configured ingest
// directory and analysis scoping. Metrics may be nil.
func NewReportService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportService{
		logger: logger.With(slog.String("component", "report_service")),
		loader: dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{
			HeaderRows:  cfg.Ingest.HeaderRows,
			FooterSheet: cfg.Ingest.FooterSheet,
		}),
		analyzer: dataprocessing.NewAnalyzer(logger, dataprocessing.AnalyzerConfig{
			OutOfStateCode: cfg.Analysis.OutOfStateCode,
			InStateCode:    cfg.Analysis.InStateCode,
		}),
		discovery: files.NewDiscovery(""),
		inputDir:  cfg.Ingest.InputDir,
		metrics:   metrics,
	}
}

// Load discovers the export files in the configured input directory and
// builds the unified dataset. It may be called again to reload; the
// previous dataset is replaced atomically on success.
func (s *ReportService) Load(ctx context.Context) error {
	found, err := s.discovery.FindExportFiles(s.inputDir)
	if err != nil {
		return errors.NewStorageError("failed to scan input directory", err)
	}

	result, err := s.loader.LoadFiles(ctx, files.Paths(found))
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.FilesLoaded.Add(float64(result.FilesLoaded))
		s.metrics.FilesSkipped.Add(float64(result.FilesSkipped))
		s.metrics.RowsLoaded.Add(float64(len(result.Records)))
	}

	distinct := make(map[string]struct{})
	for _, r := range result.Records {
		distinct[r.Description] = struct{}{}
	}

	s.mu.Lock()
	s.dataset = result.Records
	s.summary = domain.DatasetSummary{
		Files:                result.FilesLoaded,
		Rows:                 len(result.Records),
		DistinctDescriptions: len(distinct),
	}
	s.loaded = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "citation dataset loaded",
		slog.Int("files", result.FilesLoaded),
		slog.Int("skipped", result.FilesSkipped),
		slog.Int("rows", len(result.Records)))

	return nil
}

// LoadRecords installs an already-loaded dataset, bypassing discovery.
// Used by the CLI processor, which loads explicit file lists itself.
func (s *ReportService) LoadRecords(records []domain.TicketRecord, filesLoaded int) {
	distinct := make(map[string]struct{})
	for _, r := range records {
		distinct[r.Description] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = records
	s.summary = domain.DatasetSummary{
		Files:                filesLoaded,
		Rows:                 len(records),
		DistinctDescriptions: len(distinct),
	}
	s.loaded = true
}

// records returns the dataset, or an error when nothing is loaded yet.
func (s *ReportService) records() ([]domain.TicketRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, errors.NewNoDataError("citation dataset not loaded")
	}
	return s.dataset, nil
}

// Records returns the loaded dataset for export.
func (s *ReportService) Records(ctx context.Context) ([]domain.TicketRecord, error) {
	return s.records()
}

// Summary describes the loaded dataset.
func (s *ReportService) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.DatasetSummary{}, errors.NewNoDataError("citation dataset not loaded")
	}
	return s.summary, nil
}

// TimeOfDay computes the description frequency table per time bucket.
func (s *ReportService) TimeOfDay(ctx context.Context) (domain.DescriptionFrequencyTable, error) {
	records, err := s.records()
	if err != nil {
		return domain.DescriptionFrequencyTable{}, err
	}
	return s.analyzer.DescriptionsByTimeOfDay(ctx, records), nil
}

// CommonMake returns the most frequent vehicle make among out-of-state
// citations. An empty filter result surfaces as a typed error.
func (s *ReportService) CommonMake(ctx context.Context) (string, error) {
	records, err := s.records()
	if err != nil {
		return "", err
	}
	return s.analyzer.MostCommonMake(ctx, records)
}

// PlateFormats returns the in-state plate-format distribution.
func (s *ReportService) PlateFormats(ctx context.Context) (domain.PlateFormatDistribution, error) {
	records, err := s.records()
	if err != nil {
		return domain.PlateFormatDistribution{}, err
	}
	return s.analyzer.PlateFormats(ctx, records), nil
}

// AllReports computes the three aggregates concurrently. The analyses
// are order-independent reads of the immutable dataset, so they can run
// in parallel without coordination.
func (s *ReportService) AllReports(ctx context.Context) (domain.DescriptionFrequencyTable, string, domain.PlateFormatDistribution, error) {
	records, err := s.records()
	if err != nil {
		return domain.DescriptionFrequencyTable{}, "", nil, err
	}

	var (
		table       domain.DescriptionFrequencyTable
		commonMake  string
		plateCounts domain.PlateFormatDistribution
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		table = s.analyzer.DescriptionsByTimeOfDay(gctx, records)
		return nil
	})
	g.Go(func() error {
		var err error
		commonMake, err = s.analyzer.MostCommonMake(gctx, records)
		return err
	})
	g.Go(func() error {
		plateCounts = s.analyzer.PlateFormats(gctx, records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.DescriptionFrequencyTable{}, "", nil, err
	}

	return table, commonMake, plateCounts, nil
}
