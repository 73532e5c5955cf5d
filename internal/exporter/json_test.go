package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkcli/pkg/contracts/domain"
)

func TestJSONWriter_WriteBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "bundle.json")

	bundle := ReportBundle{
		Summary:    domain.DatasetSummary{Files: 2, Rows: 10, DistinctDescriptions: 3},
		CommonMake: "Honda",
		TimeOfDay: domain.DescriptionFrequencyTable{
			Descriptions: []string{"EXPIRED METER"},
			Counts: map[domain.TimeBucket]map[string]int{
				domain.BucketMorning:   {"EXPIRED METER": 1},
				domain.BucketAfternoon: {"EXPIRED METER": 0},
				domain.BucketEvening:   {"EXPIRED METER": 0},
			},
		},
		PlateFormats: domain.PlateFormatDistribution{
			domain.PlateFormatVanity: 4,
		},
	}

	writer := NewJSONWriter(nil)
	require.NoError(t, writer.WriteBundle(path, bundle))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded ReportBundle
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotEmpty(t, decoded.GeneratedAt)
	assert.Equal(t, "Honda", decoded.CommonMake)
	assert.Equal(t, 10, decoded.Summary.Rows)
	assert.Equal(t, 4, decoded.PlateFormats[domain.PlateFormatVanity])
	assert.Equal(t, 1, decoded.TimeOfDay.Count(domain.BucketMorning, "EXPIRED METER"))
}
