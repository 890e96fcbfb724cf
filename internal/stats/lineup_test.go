package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateLineupAverage(t *testing.T) {
	summaries := []*LatestSeasonSummary{
		{PointsPerGame: ptr(28.9), ReboundsPerGame: ptr(8.3)},
		{PointsPerGame: ptr(24.1)},
	}
	out, err := AggregateLineup(summaries, LineupMetricAvg)
	require.NoError(t, err)

	assert.Equal(t, 26.5, out["avg_points_per_game"])
	// Only one player has rebounds; the average is over present values.
	assert.Equal(t, 8.3, out["avg_rebounds_per_game"])
}

func TestAggregateLineupTotal(t *testing.T) {
	summaries := []*LatestSeasonSummary{
		{PointsPerGame: ptr(28.9), AssistsPerGame: ptr(6.8)},
		{PointsPerGame: ptr(24.1), AssistsPerGame: ptr(5.1)},
	}
	out, err := AggregateLineup(summaries, LineupMetricTotal)
	require.NoError(t, err)

	assert.Equal(t, 53.0, out["total_points_per_game"])
	assert.Equal(t, 11.9, out["total_assists_per_game"])
}

func TestAggregateLineupOmitsAbsentFields(t *testing.T) {
	summaries := []*LatestSeasonSummary{
		{PointsPerGame: ptr(20.0)},
		nil, // player without recent-season data
	}
	out, err := AggregateLineup(summaries, LineupMetricAvg)
	require.NoError(t, err)

	assert.Contains(t, out, "avg_points_per_game")
	// No roster member has a steals value: the field is omitted entirely,
	// never emitted as zero.
	assert.NotContains(t, out, "avg_steals_per_game")
	assert.NotContains(t, out, "avg_true_shooting_pct")
}

func TestAggregateLineupUnknownMetric(t *testing.T) {
	_, err := AggregateLineup([]*LatestSeasonSummary{{}}, "median")
	assert.Error(t, err)
}

func TestAggregateLineupRounding(t *testing.T) {
	summaries := []*LatestSeasonSummary{
		{FgPct: ptr(0.505)},
		{FgPct: ptr(0.48)},
	}
	out, err := AggregateLineup(summaries, LineupMetricAvg)
	require.NoError(t, err)
	assert.Equal(t, 0.49, out["avg_fg_pct"])
}
