package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkcli/internal/errors"
	"parkcli/pkg/contracts/domain"
)

func ticket(state, plate, vehicleMake, issueTime, description string) domain.TicketRecord {
	return domain.TicketRecord{
		State:       state,
		Plate:       plate,
		Make:        vehicleMake,
		IssueTime:   issueTime,
		Description: description,
	}
}

func TestAnalyzer_DescriptionsByTimeOfDay(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(nil, DefaultAnalyzerConfig())

	t.Run("bucket boundaries are half-open", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "300", "EXPIRED METER"),  // Morning lower bound
			ticket("MI", "", "", "1159", "EXPIRED METER"), // still Morning
			ticket("MI", "", "", "1200", "EXPIRED METER"), // Afternoon, not Morning
			ticket("MI", "", "", "1759", "EXPIRED METER"), // still Afternoon
			ticket("MI", "", "", "1800", "EXPIRED METER"), // Evening
			ticket("MI", "", "", "2359", "EXPIRED METER"), // still Evening
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		assert.Equal(t, 2, table.Count(domain.BucketMorning, "EXPIRED METER"))
		assert.Equal(t, 2, table.Count(domain.BucketAfternoon, "EXPIRED METER"))
		assert.Equal(t, 2, table.Count(domain.BucketEvening, "EXPIRED METER"))
	})

	t.Run("evening wraps midnight", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "0130", "NO PERMIT"),
			ticket("MI", "", "", "0259", "NO PERMIT"),
			ticket("MI", "", "", "0000", "NO PERMIT"),
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		assert.Equal(t, 3, table.Count(domain.BucketEvening, "NO PERMIT"))
		assert.Equal(t, 0, table.Count(domain.BucketMorning, "NO PERMIT"))
	})

	t.Run("unparseable times are dropped, not zeroed", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "0930", "EXPIRED METER"),
			ticket("MI", "", "", "n/a", "EXPIRED METER"),
			ticket("MI", "", "", "", "EXPIRED METER"),
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		total := table.Count(domain.BucketMorning, "EXPIRED METER") +
			table.Count(domain.BucketAfternoon, "EXPIRED METER") +
			table.Count(domain.BucketEvening, "EXPIRED METER")
		assert.Equal(t, 1, total)
	})

	t.Run("float formatted times are coerced", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "930.0", "EXPIRED METER"),
			ticket("MI", "", "", " 1305 ", "EXPIRED METER"),
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		assert.Equal(t, 1, table.Count(domain.BucketMorning, "EXPIRED METER"))
		assert.Equal(t, 1, table.Count(domain.BucketAfternoon, "EXPIRED METER"))
	})

	t.Run("all buckets share the full description column set", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "0930", "EXPIRED METER"),
			ticket("MI", "", "", "1400", "NO PERMIT"),
			ticket("MI", "", "", "2000", "BLOCKED DRIVE"),
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		assert.Equal(t, []string{"BLOCKED DRIVE", "EXPIRED METER", "NO PERMIT"}, table.Descriptions)
		for _, bucket := range domain.TimeBuckets() {
			require.Len(t, table.Counts[bucket], 3)
		}
		// Zero-filled where a description never occurs in a bucket.
		assert.Equal(t, 0, table.Count(domain.BucketMorning, "NO PERMIT"))
		assert.Equal(t, 0, table.Count(domain.BucketEvening, "EXPIRED METER"))
	})

	t.Run("bucket sums equal parseable row totals per description", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "0500", "EXPIRED METER"),
			ticket("MI", "", "", "1300", "EXPIRED METER"),
			ticket("MI", "", "", "1900", "EXPIRED METER"),
			ticket("MI", "", "", "0100", "EXPIRED METER"),
			ticket("MI", "", "", "bogus", "EXPIRED METER"),
			ticket("MI", "", "", "1300", "NO PERMIT"),
		}

		table := analyzer.DescriptionsByTimeOfDay(ctx, records)

		sum := 0
		for _, bucket := range domain.TimeBuckets() {
			sum += table.Count(bucket, "EXPIRED METER")
		}
		assert.Equal(t, 4, sum)
	})

	t.Run("empty dataset yields empty table", func(t *testing.T) {
		table := analyzer.DescriptionsByTimeOfDay(ctx, nil)
		assert.Empty(t, table.Descriptions)
		for _, bucket := range domain.TimeBuckets() {
			assert.Empty(t, table.Counts[bucket])
		}
	})
}

func TestAnalyzer_MostCommonMake(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(nil, DefaultAnalyzerConfig())

	t.Run("returns the mode among NY citations", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("NY", "", "Honda", "", ""),
			ticket("NY", "", "Honda", "", ""),
			ticket("NY", "", "Ford", "", ""),
			ticket("MI", "", "Ford", "", ""), // out of scope
			ticket("MI", "", "Ford", "", ""),
			ticket("MI", "", "Ford", "", ""),
		}

		got, err := analyzer.MostCommonMake(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, "Honda", got)
	})

	t.Run("state matching is exact", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("ny", "", "Honda", "", ""),
			ticket("NY ", "", "Honda", "", ""),
		}

		_, err := analyzer.MostCommonMake(ctx, records)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeEmptyFilter))
	})

	t.Run("ties break lexicographically", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("NY", "", "Honda", "", ""),
			ticket("NY", "", "Ford", "", ""),
		}

		got, err := analyzer.MostCommonMake(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, "Ford", got)
	})

	t.Run("zero matching rows is an explicit error", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "Honda", "", ""),
		}

		_, err := analyzer.MostCommonMake(ctx, records)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeEmptyFilter))
	})
}

func TestAnalyzer_PlateFormats(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(nil, DefaultAnalyzerConfig())

	t.Run("classifies the fixed formats and buckets the rest as vanity", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "ABC1234", "", "", ""),
			ticket("MI", "ABC123", "", "", ""),
			ticket("MI", "123ABC", "", "", ""),
			ticket("MI", "XYZ", "", "", ""),
			ticket("MI", "AB12", "", "", ""),
		}

		dist := analyzer.PlateFormats(ctx, records)

		assert.Equal(t, 1, dist[domain.PlateFormatLLLDDDD])
		assert.Equal(t, 1, dist[domain.PlateFormatLLLDDD])
		assert.Equal(t, 1, dist[domain.PlateFormatDDDLLL])
		assert.Equal(t, 2, dist[domain.PlateFormatVanity])
		assert.Equal(t, 5, dist.Total())
	})

	t.Run("patterns require uppercase and exact lengths", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "abc1234", "", "", ""), // lowercase
			ticket("MI", "ABCD1234", "", "", ""), // four letters
			ticket("MI", "AB1234", "", "", ""),   // two letters
		}

		dist := analyzer.PlateFormats(ctx, records)

		assert.Equal(t, 0, dist[domain.PlateFormatLLLDDDD])
		assert.Equal(t, 3, dist[domain.PlateFormatVanity])
	})

	t.Run("missing plates are dropped before classification", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("MI", "", "", "", ""),
			ticket("MI", "ABC1234", "", "", ""),
		}

		dist := analyzer.PlateFormats(ctx, records)

		assert.Equal(t, 1, dist.Total())
	})

	t.Run("rows outside the state filter are ignored", func(t *testing.T) {
		records := []domain.TicketRecord{
			ticket("NY", "ABC1234", "", "", ""),
			ticket("mi", "ABC1234", "", "", ""),
		}

		dist := analyzer.PlateFormats(ctx, records)

		assert.Equal(t, 0, dist.Total())
	})

	t.Run("zero matching rows yields all-zero counts", func(t *testing.T) {
		dist := analyzer.PlateFormats(ctx, nil)

		require.Len(t, dist, 4)
		for _, format := range domain.PlateFormats() {
			assert.Equal(t, 0, dist[format])
		}
	})
}

func TestParseIssueTime(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  int
		valid bool
	}{
		{name: "plain HHMM", raw: "0930", want: 930, valid: true},
		{name: "float formatted", raw: "1305.0", want: 1305, valid: true},
		{name: "padded", raw: " 1200 ", want: 1200, valid: true},
		{name: "thousands separator", raw: "1,305", want: 1305, valid: true},
		{name: "midnight", raw: "0", want: 0, valid: true},
		{name: "empty", raw: "", valid: false},
		{name: "text", raw: "noon", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseIssueTime(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBucketForTime(t *testing.T) {
	tests := []struct {
		time   int
		bucket domain.TimeBucket
		ok     bool
	}{
		{time: 300, bucket: domain.BucketMorning, ok: true},
		{time: 1199, bucket: domain.BucketMorning, ok: true},
		{time: 1200, bucket: domain.BucketAfternoon, ok: true},
		{time: 1799, bucket: domain.BucketAfternoon, ok: true},
		{time: 1800, bucket: domain.BucketEvening, ok: true},
		{time: 2399, bucket: domain.BucketEvening, ok: true},
		{time: 0, bucket: domain.BucketEvening, ok: true},
		{time: 130, bucket: domain.BucketEvening, ok: true},
		{time: 299, bucket: domain.BucketEvening, ok: true},
		{time: 2400, ok: false},
		{time: -1, ok: false},
	}

	for _, tt := range tests {
		bucket, ok := bucketForTime(tt.time)
		assert.Equal(t, tt.ok, ok, "time %d", tt.time)
		if tt.ok {
			assert.Equal(t, tt.bucket, bucket, "time %d", tt.time)
		}
	}
}
