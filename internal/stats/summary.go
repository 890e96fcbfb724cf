package stats

// ProjectLatest derives the flat latest-season summary from a chronologically
// sorted regular-season list. Returns nil when the list is empty or the most
// recent season carries no basic stats. A basic-only season yields a summary
// with nil advanced-derived fields, not an error.
func ProjectLatest(seasons []SeasonRecord) *LatestSeasonSummary {
	if len(seasons) == 0 {
		return nil
	}
	latest := seasons[len(seasons)-1]
	if latest.Basic == nil {
		return nil
	}

	summary := &LatestSeasonSummary{
		Team:             latest.Team,
		PointsPerGame:    latest.Basic.PtsPerGame,
		ReboundsPerGame:  latest.Basic.RebPerGame,
		AssistsPerGame:   latest.Basic.AstPerGame,
		StealsPerGame:    latest.Basic.StlPerGame,
		BlocksPerGame:    latest.Basic.BlkPerGame,
		TurnoversPerGame: latest.Basic.TovPerGame,
		FgPct:            latest.Basic.FgPct,
		Fg3Pct:           latest.Basic.Fg3Pct,
		FtPct:            latest.Basic.FtPct,
		MinutesPerGame:   latest.Basic.MinPerGame,
	}
	if latest.Advanced != nil {
		summary.UsageRate = latest.Advanced.UsgPct
		summary.TrueShootingPct = latest.Advanced.TsPct
	}
	return summary
}
