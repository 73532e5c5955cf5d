package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"parkcli/internal/errors"
	"parkcli/pkg/contracts/domain"
)

// Time-of-day bucket boundaries, numeric HHMM. Each bucket is half-open
// at its upper bound; Evening wraps midnight.
const (
	morningStart   = 300
	afternoonStart = 1200
	eveningStart   = 1800
	dayEnd         = 2400
)

// Standard plate patterns. Checked independently; the three are
// mutually exclusive by length.
var (
	plateThreeLettersFourDigits  = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	plateThreeLettersThreeDigits = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	plateThreeDigitsThreeLetters = regexp.MustCompile(`^[0-9]{3}[A-Z]{3}$`)
)

// AnalyzerConfig holds the state codes the aggregates filter on.
type AnalyzerConfig struct {
	// OutOfStateCode scopes the common-make aggregate. Exact match only.
	OutOfStateCode string
	// InStateCode scopes the plate-format aggregate. Exact match only.
	InStateCode string
}

// DefaultAnalyzerConfig returns the production state codes: NY plates
// for the out-of-state make, MI plates for the format distribution.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		OutOfStateCode: "NY",
		InStateCode:    "MI",
	}
}

// Analyzer computes the descriptive aggregates over a loaded citation
// dataset. The dataset is treated as read-only; the three analyses are
// independent of one another.
type Analyzer struct {
	logger *slog.Logger
	config AnalyzerConfig
}

// NewAnalyzer creates an analyzer with the given state-code scoping.
func NewAnalyzer(logger *slog.Logger, config AnalyzerConfig) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.OutOfStateCode == "" {
		config.OutOfStateCode = "NY"
	}
	if config.InStateCode == "" {
		config.InStateCode = "MI"
	}

	return &Analyzer{
		logger: logger.With(slog.String("component", "analyzer")),
		config: config,
	}
}

// DescriptionsByTimeOfDay counts citations per description for each
// time-of-day bucket. The column set is the distinct descriptions of
// the whole dataset, so all three bucket rows share identical columns,
// zero-filled where a description never occurs in a bucket. Rows whose
// issue time cannot be coerced to numeric HHMM are excluded; their time
// is unknowable, not zero.
func (a *Analyzer) DescriptionsByTimeOfDay(ctx context.Context, records []domain.TicketRecord) domain.DescriptionFrequencyTable {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Description] = struct{}{}
	}

	descriptions := make([]string, 0, len(seen))
	for d := range seen {
		descriptions = append(descriptions, d)
	}
	sort.Strings(descriptions)

	counts := make(map[domain.TimeBucket]map[string]int, 3)
	for _, bucket := range domain.TimeBuckets() {
		row := make(map[string]int, len(descriptions))
		for _, d := range descriptions {
			row[d] = 0
		}
		counts[bucket] = row
	}

	dropped := 0
	for _, r := range records {
		t, ok := parseIssueTime(r.IssueTime)
		if !ok {
			dropped++
			continue
		}
		bucket, ok := bucketForTime(t)
		if !ok {
			continue
		}
		counts[bucket][r.Description]++
	}

	if dropped > 0 {
		a.logger.DebugContext(ctx, "dropped rows with unparseable issue time",
			slog.Int("dropped", dropped),
			slog.Int("total", len(records)))
	}

	return domain.DescriptionFrequencyTable{
		Descriptions: descriptions,
		Counts:       counts,
	}
}

// MostCommonMake returns the mode of the vehicle-make field among
// citations whose state code equals the configured out-of-state code.
// Zero matching rows is an explicit error: the mode of an empty set is
// undefined and must not degrade to a silent default. Ties break to the
// lexicographically smallest make for deterministic output.
func (a *Analyzer) MostCommonMake(ctx context.Context, records []domain.TicketRecord) (string, error) {
	makeCounts := make(map[string]int)
	for _, r := range records {
		if r.State != a.config.OutOfStateCode {
			continue
		}
		makeCounts[r.Make]++
	}

	if len(makeCounts) == 0 {
		return "", errors.NewEmptyFilterError(
			fmt.Sprintf("no citations with state code %q", a.config.OutOfStateCode))
	}

	var best string
	bestCount := -1
	for name, count := range makeCounts {
		if count > bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}

	a.logger.DebugContext(ctx, "computed most common out-of-state make",
		slog.String("state", a.config.OutOfStateCode),
		slog.String("make", best),
		slog.Int("count", bestCount))

	return best, nil
}

// PlateFormats classifies in-state plates into the three standard
// format categories plus vanity. Rows with a missing plate are dropped;
// everything matching none of the fixed patterns is vanity, including
// malformed or custom plates. Zero matching rows is well defined: all
// counts zero.
func (a *Analyzer) PlateFormats(ctx context.Context, records []domain.TicketRecord) domain.PlateFormatDistribution {
	dist := domain.PlateFormatDistribution{}
	for _, format := range domain.PlateFormats() {
		dist[format] = 0
	}

	for _, r := range records {
		if r.State != a.config.InStateCode {
			continue
		}
		if r.Plate == "" {
			continue
		}

		// Each pattern is checked independently rather than as an
		// if/else chain; vanity is the explicit matches-none bucket.
		matched := false
		if plateThreeLettersFourDigits.MatchString(r.Plate) {
			dist[domain.PlateFormatLLLDDDD]++
			matched = true
		}
		if plateThreeLettersThreeDigits.MatchString(r.Plate) {
			dist[domain.PlateFormatLLLDDD]++
			matched = true
		}
		if plateThreeDigitsThreeLetters.MatchString(r.Plate) {
			dist[domain.PlateFormatDDDLLL]++
			matched = true
		}
		if !matched {
			dist[domain.PlateFormatVanity]++
		}
	}

	a.logger.DebugContext(ctx, "computed plate format distribution",
		slog.String("state", a.config.InStateCode),
		slog.Int("classified", dist.Total()))

	return dist
}

// parseIssueTime coerces a raw issue-time cell to its numeric HHMM
// form. Cells come back from the sheets as strings, sometimes with
// float formatting or thousands separators.
func parseIssueTime(raw string) (int, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return int(f), true
}

// bucketForTime maps a numeric HHMM time to its day segment. Times
// outside [0, 2400) fall in no bucket.
func bucketForTime(t int) (domain.TimeBucket, bool) {
	switch {
	case t >= morningStart && t < afternoonStart:
		return domain.BucketMorning, true
	case t >= afternoonStart && t < eveningStart:
		return domain.BucketAfternoon, true
	case (t >= eveningStart && t < dayEnd) || (t >= 0 && t < morningStart):
		return domain.BucketEvening, true
	}
	return "", false
}
