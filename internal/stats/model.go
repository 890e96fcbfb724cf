// Package stats implements the season reconciliation engine and the derived
// views built on top of it: latest-season summaries, lineup aggregation, and
// the category-based recommendation ranker.
//
// All entities are request-scoped value objects. Nothing is mutated after
// construction; cached profiles are shared between requests and must be
// treated as read-only.
package stats

import "context"

// Row is one raw tabular row from the upstream provider, keyed by column
// header. Columns are effectively duck-typed: any column may be missing and
// values may arrive as numbers, strings, or null.
type Row map[string]any

// ProfileTables holds the two result tables returned by one upstream fetch
// for a single (per-mode, season-type) combination.
type ProfileTables struct {
	// Seasons holds one row per season, in upstream order.
	Seasons []Row
	// CareerTotals is the single aggregate row for the player's full
	// history, or nil when the upstream returned none.
	CareerTotals Row
}

// Per-mode and season-type selectors understood by the upstream provider.
const (
	PerModeBasic    = "PerGame"
	PerModeAdvanced = "Advanced"

	SeasonTypeRegular  = "Regular Season"
	SeasonTypePlayoffs = "Playoffs"
)

// ProfileFetcher is the upstream statistics provider, keyed by player
// identifier, per-mode, and season-type.
type ProfileFetcher interface {
	PlayerProfile(ctx context.Context, playerID int, perMode, seasonType string) (*ProfileTables, error)
}

// BasicStats holds per-game counting statistics for one season or career.
// Every field is optional: nil means the source row lacked the column or the
// value was not a finite number.
type BasicStats struct {
	GP           *int     `json:"gp"`
	GS           *int     `json:"gs"`
	MinPerGame   *float64 `json:"min_per_game"`
	PtsPerGame   *float64 `json:"pts_per_game"`
	FgmPerGame   *float64 `json:"fgm_per_game"`
	FgaPerGame   *float64 `json:"fga_per_game"`
	FgPct        *float64 `json:"fg_pct"`
	Fg3mPerGame  *float64 `json:"fg3m_per_game"`
	Fg3aPerGame  *float64 `json:"fg3a_per_game"`
	Fg3Pct       *float64 `json:"fg3_pct"`
	FtmPerGame   *float64 `json:"ftm_per_game"`
	FtaPerGame   *float64 `json:"fta_per_game"`
	FtPct        *float64 `json:"ft_pct"`
	OrebPerGame  *float64 `json:"oreb_per_game"`
	DrebPerGame  *float64 `json:"dreb_per_game"`
	RebPerGame   *float64 `json:"reb_per_game"`
	AstPerGame   *float64 `json:"ast_per_game"`
	TovPerGame   *float64 `json:"tov_per_game"`
	StlPerGame   *float64 `json:"stl_per_game"`
	BlkPerGame   *float64 `json:"blk_per_game"`
	PfPerGame    *float64 `json:"pf_per_game"`
}

// IsEmpty reports whether no field was populated.
func (b *BasicStats) IsEmpty() bool {
	if b == nil {
		return true
	}
	if b.GP != nil || b.GS != nil {
		return false
	}
	for _, p := range []*float64{
		b.MinPerGame, b.PtsPerGame, b.FgmPerGame, b.FgaPerGame, b.FgPct,
		b.Fg3mPerGame, b.Fg3aPerGame, b.Fg3Pct, b.FtmPerGame, b.FtaPerGame,
		b.FtPct, b.OrebPerGame, b.DrebPerGame, b.RebPerGame, b.AstPerGame,
		b.TovPerGame, b.StlPerGame, b.BlkPerGame, b.PfPerGame,
	} {
		if p != nil {
			return false
		}
	}
	return true
}

// AdvancedStats holds efficiency and rate statistics for one season or
// career. Same optionality rules as BasicStats.
type AdvancedStats struct {
	OffRating *float64 `json:"off_rating"`
	DefRating *float64 `json:"def_rating"`
	NetRating *float64 `json:"net_rating"`
	AstPct    *float64 `json:"ast_pct"`
	AstTo     *float64 `json:"ast_to_val"`
	AstRatio  *float64 `json:"ast_ratio"`
	OrebPct   *float64 `json:"oreb_pct"`
	DrebPct   *float64 `json:"dreb_pct"`
	RebPct    *float64 `json:"reb_pct"`
	TmTovPct  *float64 `json:"tm_tov_pct"`
	EfgPct    *float64 `json:"efg_pct"`
	TsPct     *float64 `json:"ts_pct"`
	UsgPct    *float64 `json:"usg_pct"`
	Pace      *float64 `json:"pace"`
	Pie       *float64 `json:"pie"`
	Ws        *float64 `json:"ws"`
}

// IsEmpty reports whether no field was populated.
func (a *AdvancedStats) IsEmpty() bool {
	if a == nil {
		return true
	}
	for _, p := range []*float64{
		a.OffRating, a.DefRating, a.NetRating, a.AstPct, a.AstTo, a.AstRatio,
		a.OrebPct, a.DrebPct, a.RebPct, a.TmTovPct, a.EfgPct, a.TsPct,
		a.UsgPct, a.Pace, a.Pie, a.Ws,
	} {
		if p != nil {
			return false
		}
	}
	return true
}

// SeasonRecord is one season of a player's history for one season type.
// Identity key is SeasonID. A record exists only if at least one source row
// existed for that season in at least one per-mode fetch.
type SeasonRecord struct {
	SeasonID string         `json:"season_id"`
	Team     string         `json:"team_abbreviation"`
	Age      *int           `json:"player_age"`
	Basic    *BasicStats    `json:"basic_stats"`
	Advanced *AdvancedStats `json:"advanced_stats"`
}

// CareerRecord aggregates a player's full history for one season type, as
// computed by the upstream source (never recomputed locally).
type CareerRecord struct {
	Basic    *BasicStats    `json:"basic_stats"`
	Advanced *AdvancedStats `json:"advanced_stats"`
}

// LatestSeasonSummary is a flat projection of a player's most recent regular
// season. Advanced-derived fields are nil when the season had no advanced row.
type LatestSeasonSummary struct {
	Team             string   `json:"team"`
	PointsPerGame    *float64 `json:"points_per_game"`
	ReboundsPerGame  *float64 `json:"rebounds_per_game"`
	AssistsPerGame   *float64 `json:"assists_per_game"`
	StealsPerGame    *float64 `json:"steals_per_game"`
	BlocksPerGame    *float64 `json:"blocks_per_game"`
	TurnoversPerGame *float64 `json:"turnovers_per_game"`
	FgPct            *float64 `json:"fg_pct"`
	Fg3Pct           *float64 `json:"fg3_pct"`
	FtPct            *float64 `json:"ft_pct"`
	MinutesPerGame   *float64 `json:"minutes_per_game"`
	UsageRate        *float64 `json:"usage_rate"`
	TrueShootingPct  *float64 `json:"true_shooting_pct"`
}

// PlayerProfile is the reconciled view of a player's seasons and careers.
// Nil slices and records mean the slice was not requested or the upstream
// had no data for it; neither case is an error.
type PlayerProfile struct {
	LatestSeasonSummary      *LatestSeasonSummary `json:"latest_season_summary"`
	CareerRegularSeason      *CareerRecord        `json:"career_regular_season"`
	CareerPlayoffs           *CareerRecord        `json:"career_playoffs"`
	HistoricalRegularSeasons []SeasonRecord       `json:"historical_regular_seasons"`
	HistoricalPlayoffSeasons []SeasonRecord       `json:"historical_playoff_seasons"`
}
