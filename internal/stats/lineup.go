package stats

import "fmt"

// Aggregation modes for lineup stats.
const (
	LineupMetricAvg   = "avg"
	LineupMetricTotal = "total"
)

// summaryFields enumerates the numeric latest-season summary fields in a
// fixed order. Team is excluded as non-numeric.
var summaryFields = []struct {
	key string
	get func(*LatestSeasonSummary) *float64
}{
	{"points_per_game", func(s *LatestSeasonSummary) *float64 { return s.PointsPerGame }},
	{"rebounds_per_game", func(s *LatestSeasonSummary) *float64 { return s.ReboundsPerGame }},
	{"assists_per_game", func(s *LatestSeasonSummary) *float64 { return s.AssistsPerGame }},
	{"steals_per_game", func(s *LatestSeasonSummary) *float64 { return s.StealsPerGame }},
	{"blocks_per_game", func(s *LatestSeasonSummary) *float64 { return s.BlocksPerGame }},
	{"turnovers_per_game", func(s *LatestSeasonSummary) *float64 { return s.TurnoversPerGame }},
	{"fg_pct", func(s *LatestSeasonSummary) *float64 { return s.FgPct }},
	{"fg3_pct", func(s *LatestSeasonSummary) *float64 { return s.Fg3Pct }},
	{"ft_pct", func(s *LatestSeasonSummary) *float64 { return s.FtPct }},
	{"minutes_per_game", func(s *LatestSeasonSummary) *float64 { return s.MinutesPerGame }},
	{"usage_rate", func(s *LatestSeasonSummary) *float64 { return s.UsageRate }},
	{"true_shooting_pct", func(s *LatestSeasonSummary) *float64 { return s.TrueShootingPct }},
}

// AggregateLineup combines multiple players' latest-season summaries into
// team-level statistics. Nil summaries (players without recent-season data)
// are skipped per field. Fields with no present value across the whole
// roster are omitted from the output entirely, never emitted as zero.
//
// Pure function of the inputs; performs no upstream fetching.
func AggregateLineup(summaries []*LatestSeasonSummary, metric string) (map[string]float64, error) {
	if metric != LineupMetricAvg && metric != LineupMetricTotal {
		return nil, fmt.Errorf("unknown aggregation metric %q", metric)
	}

	out := make(map[string]float64)
	for _, field := range summaryFields {
		var sum float64
		var count int
		for _, s := range summaries {
			if s == nil {
				continue
			}
			if v := field.get(s); v != nil {
				sum += *v
				count++
			}
		}
		if count == 0 {
			continue
		}
		value := sum
		if metric == LineupMetricAvg {
			value = sum / float64(count)
		}
		out[metric+"_"+field.key] = roundTo(value, 2)
	}
	return out, nil
}
