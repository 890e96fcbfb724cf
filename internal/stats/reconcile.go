package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hoopsight/hoopsight/internal/cache"
)

// FetchOptions selects which slices of a player's history to reconcile.
// Callers requesting a narrower slice get (and cache) a distinct result
// from callers requesting everything.
type FetchOptions struct {
	Regular  bool
	Playoffs bool
	Basic    bool
	Advanced bool
}

// AllFetchOptions requests every season-type and stat-mode combination.
func AllFetchOptions() FetchOptions {
	return FetchOptions{Regular: true, Playoffs: true, Basic: true, Advanced: true}
}

// Service reconciles per-mode, per-season-type upstream fetches into unified
// player profiles. Results are memoized for the process lifetime in the
// injected store; concurrent requests for an uncached key may each fetch
// redundantly (fetches are read-only and idempotent, so this is accepted).
type Service struct {
	fetcher ProfileFetcher
	cache   *cache.Store
	logger  *slog.Logger
}

// NewService creates a reconciliation service.
func NewService(fetcher ProfileFetcher, store *cache.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, cache: store, logger: logger}
}

// BuildProfile produces the reconciled profile for one player.
//
// Each requested (season-type, per-mode) combination is fetched
// independently; a failed fetch is logged and treated as "no data" for that
// combination, never aborting the whole build. Regular-season and playoff
// pipelines share no merge state.
func (s *Service) BuildProfile(ctx context.Context, playerID int, opts FetchOptions) (*PlayerProfile, error) {
	key := fmt.Sprintf("profile:%d:%t:%t:%t:%t",
		playerID, opts.Regular, opts.Playoffs, opts.Basic, opts.Advanced)
	if v, ok := s.cache.Get(key); ok {
		return v.(*PlayerProfile), nil
	}

	p := &PlayerProfile{}
	if opts.Regular {
		seasons, career := s.reconcileSeasonType(ctx, playerID, SeasonTypeRegular, opts)
		p.HistoricalRegularSeasons = seasons
		p.CareerRegularSeason = career
		p.LatestSeasonSummary = ProjectLatest(seasons)
	}
	if opts.Playoffs {
		seasons, career := s.reconcileSeasonType(ctx, playerID, SeasonTypePlayoffs, opts)
		p.HistoricalPlayoffSeasons = seasons
		p.CareerPlayoffs = career
	}

	s.cache.Set(key, p)
	return p, nil
}

// reconcileSeasonType merges the basic-mode and advanced-mode tables for one
// season type into sorted season records plus an optional career record.
func (s *Service) reconcileSeasonType(ctx context.Context, playerID int, seasonType string, opts FetchOptions) ([]SeasonRecord, *CareerRecord) {
	var basic, advanced *ProfileTables
	if opts.Basic {
		basic = s.fetchTables(ctx, playerID, PerModeBasic, seasonType)
	}
	if opts.Advanced {
		advanced = s.fetchTables(ctx, playerID, PerModeAdvanced, seasonType)
	}
	return mergeSeasons(basic, advanced), mergeCareer(basic, advanced)
}

// fetchTables performs one upstream fetch, absorbing any failure into "no
// data" for that combination.
func (s *Service) fetchTables(ctx context.Context, playerID int, perMode, seasonType string) *ProfileTables {
	tables, err := s.fetcher.PlayerProfile(ctx, playerID, perMode, seasonType)
	if err != nil {
		s.logger.Warn("upstream profile fetch failed",
			"player_id", playerID,
			"per_mode", perMode,
			"season_type", seasonType,
			"error", err)
		return nil
	}
	return tables
}

// mergeSeasons builds season records from the union of season identifiers
// seen in either table. A season present in only one table still produces a
// record with the one populated side. Team and age metadata prefer the
// basic-mode row and fall back to the advanced-mode row; when a mode was
// never fetched at all, whichever table actually contains the season wins.
func mergeSeasons(basic, advanced *ProfileTables) []SeasonRecord {
	basicByID := indexBySeason(basic)
	advancedByID := indexBySeason(advanced)

	ids := make([]string, 0, len(basicByID)+len(advancedByID))
	seen := make(map[string]bool)
	for id := range basicByID {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range advancedByID {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	// Lexicographic order on the "YYYY-YY" form is chronological.
	sort.Strings(ids)

	records := make([]SeasonRecord, 0, len(ids))
	for _, id := range ids {
		rec := SeasonRecord{SeasonID: id}
		basicRow, hasBasic := basicByID[id]
		advancedRow, hasAdvanced := advancedByID[id]
		if hasBasic {
			rec.Basic = ParseBasic(basicRow)
		}
		if hasAdvanced {
			rec.Advanced = ParseAdvanced(advancedRow)
		}
		metaRow := basicRow
		if !hasBasic {
			metaRow = advancedRow
		}
		rec.Team = safeString(metaRow["TEAM_ABBREVIATION"])
		rec.Age = safeInt(metaRow["PLAYER_AGE"])
		records = append(records, rec)
	}
	return records
}

// mergeCareer combines the two career-total rows. The record is present only
// when at least one side parsed to a non-empty result.
func mergeCareer(basic, advanced *ProfileTables) *CareerRecord {
	career := &CareerRecord{}
	if basic != nil && basic.CareerTotals != nil {
		if parsed := ParseBasic(basic.CareerTotals); !parsed.IsEmpty() {
			career.Basic = parsed
		}
	}
	if advanced != nil && advanced.CareerTotals != nil {
		if parsed := ParseAdvanced(advanced.CareerTotals); !parsed.IsEmpty() {
			career.Advanced = parsed
		}
	}
	if career.Basic == nil && career.Advanced == nil {
		return nil
	}
	return career
}

func indexBySeason(tables *ProfileTables) map[string]Row {
	if tables == nil {
		return nil
	}
	byID := make(map[string]Row, len(tables.Seasons))
	for _, row := range tables.Seasons {
		id := safeString(row["SEASON_ID"])
		if id == "" {
			continue
		}
		byID[id] = row
	}
	return byID
}
