package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"parkcli/internal/errors"
	"parkcli/pkg/contracts/domain"
)

// columnCount is the width of the canonical citation schema.
const columnCount = 14

// LoaderConfig describes the fixed layout of the citation exports.
type LoaderConfig struct {
	// HeaderRows is the number of boilerplate rows at the top of every
	// sheet, discarded before data rows begin.
	HeaderRows int
	// FooterSheet names the one sheet whose final row is a footer
	// artifact and must also be discarded.
	FooterSheet string
}

// DefaultLoaderConfig returns the layout of the city's export files:
// four boilerplate rows per sheet and a trailing footer on "Sheet3".
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		HeaderRows:  4,
		FooterSheet: "Sheet3",
	}
}

// LoadResult is the outcome of loading a set of export files.
type LoadResult struct {
	Records      []domain.TicketRecord
	FilesLoaded  int
	FilesSkipped int
}

// Loader reads citation export workbooks into the unified dataset.
// Parsing is positional and offset-based: it assumes the stable export
// layout, and a deviating sheet misaligns silently rather than erroring.
type Loader struct {
	logger *slog.Logger
	config LoaderConfig
}

// NewLoader creates a loader for the given sheet layout.
func NewLoader(logger *slog.Logger, config LoaderConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if config.HeaderRows < 0 {
		config.HeaderRows = 0
	}

	return &Loader{
		logger: logger.With(slog.String("component", "loader")),
		config: config,
	}
}

// LoadFiles reads every sheet of every file and concatenates the
// retained rows, preserving file argument order and sheet order within
// each workbook. Files that fail to open or contribute no rows are
// skipped with a diagnostic notice. If no file contributes any data the
// whole operation fails with a NO_DATA error.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (*LoadResult, error) {
	result := &LoadResult{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := l.loadFile(ctx, path)
		if err != nil {
			l.logger.WarnContext(ctx, "skipping unreadable citation export",
				slog.String("path", path),
				slog.String("error", err.Error()))
			result.FilesSkipped++
			continue
		}
		if len(records) == 0 {
			l.logger.WarnContext(ctx, "skipping citation export with no usable sheets",
				slog.String("path", path))
			result.FilesSkipped++
			continue
		}

		l.logger.InfoContext(ctx, "loaded citation export",
			slog.String("path", path),
			slog.Int("rows", len(records)))
		result.Records = append(result.Records, records...)
		result.FilesLoaded++
	}

	if len(result.Records) == 0 {
		return nil, errors.NewNoDataError("no citation data available from any input file")
	}

	return result, nil
}

// loadFile reads one workbook. The file handle is released before the
// caller moves on to the next file, whether or not the sheets parsed.
func (l *Loader) loadFile(ctx context.Context, path string) ([]domain.TicketRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WarnContext(ctx, "failed to close workbook",
				slog.String("path", path),
				slog.String("error", cerr.Error()))
		}
	}()

	var records []domain.TicketRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			l.logger.WarnContext(ctx, "skipping unreadable sheet",
				slog.String("path", path),
				slog.String("sheet", sheet),
				slog.String("error", err.Error()))
			continue
		}
		if len(rows) <= l.config.HeaderRows {
			// Nothing beyond the boilerplate header block.
			continue
		}

		rows = rows[l.config.HeaderRows:]
		if sheet == l.config.FooterSheet && len(rows) > 0 {
			rows = rows[:len(rows)-1]
		}

		for _, row := range rows {
			records = append(records, recordFromRow(row))
		}
	}

	return records, nil
}

// recordFromRow assigns cells to the canonical schema positionally.
// Short rows pad with empty strings and extra cells are dropped; a
// misshapen sheet produces misaligned values, not an error.
func recordFromRow(row []string) domain.TicketRecord {
	cells := make([]string, columnCount)
	copy(cells, row)

	return domain.TicketRecord{
		TicketNumber: cells[0],
		Badge:        cells[1],
		IssueDate:    cells[2],
		IssueTime:    cells[3],
		Plate:        cells[4],
		State:        cells[5],
		Make:         cells[6],
		Model:        cells[7],
		Violation:    cells[8],
		Description:  cells[9],
		Location:     cells[10],
		Meter:        cells[11],
		Fine:         cells[12],
		Penalty:      cells[13],
	}
}
