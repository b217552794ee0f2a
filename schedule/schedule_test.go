package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archive-keeper/models"
)

func TestEveryFrequencyHasASchedule(t *testing.T) {
	for _, f := range models.Frequencies {
		_, err := For(f)
		assert.NoError(t, err, "frequency %s", f)
	}

	_, err := For("yearly")
	assert.Error(t, err)
}

func TestNextRun(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

	cases := []struct {
		freq models.Frequency
		want time.Time
	}{
		{models.FrequencyHourly, time.Date(2024, 3, 14, 16, 0, 0, 0, time.UTC)},
		{models.FrequencyDaily, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyWeekly, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyMonthly, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			got, err := NextRun(models.Rule{Frequency: tc.freq, StartDate: "2016-01-01T00:00:00Z"}, now)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s want %s", got, tc.want)
		})
	}
}

func TestNextRunWaitsForStartDate(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	rule := models.Rule{Frequency: models.FrequencyDaily, StartDate: "2024-06-01T12:00:00Z"}

	got, err := NextRun(rule, now)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC).Equal(got), "got %s", got)
}
