package http

import (
	"context"

	"parkcli/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations the handlers depend on.
// Implemented by services.ReportService; mocked in handler tests.
type ReportServiceInterface interface {
	Summary(ctx context.Context) (domain.DatasetSummary, error)
	TimeOfDay(ctx context.Context) (domain.DescriptionFrequencyTable, error)
	CommonMake(ctx context.Context) (string, error)
	PlateFormats(ctx context.Context) (domain.PlateFormatDistribution, error)
}
