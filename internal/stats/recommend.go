package stats

import (
	"context"
	"sort"
	"strings"
)

// Fixed playing-time floors applied before a candidate can be scored.
// Deliberately not caller-configurable.
const (
	minGamesPlayed    = 10
	minMinutesPerGame = 15.0
)

// PoolPlayer is one candidate from the active-player pool.
type PoolPlayer struct {
	ID       int
	FullName string
}

// RecommendationRequest captures the caller's ranking criteria.
type RecommendationRequest struct {
	TargetCategories   []string
	NumRecommendations int
	ExcludedPlayerIDs  []int
}

// RecommendationCandidate is one ranked player in the response. Ephemeral;
// produced and ranked per request.
type RecommendationCandidate struct {
	PlayerID            int                 `json:"player_id"`
	FullName            string              `json:"full_name"`
	RecommendationScore float64             `json:"recommendation_score"`
	// TargetedCategoryStats maps each requested (normalized) category to the
	// candidate's raw stat value; nil marks an unknown category or an absent
	// stat, either of which contributed zero to the score.
	TargetedCategoryStats map[string]*float64 `json:"targeted_category_stats"`
	LatestSeasonBrief     map[string]*float64 `json:"latest_season_brief"`
}

// categorySpec describes how one category is scored: which record kind the
// stat lives on and whether a lower value is better. The table-driven
// default is contribution == raw value (negated when lower is better); the
// volume-weighted percentage categories and the hard-coded TOV negation are
// layered on top as explicit exceptions in scoreContribution.
type categorySpec struct {
	value         func(*BasicStats, *AdvancedStats) *float64
	lowerIsBetter bool
}

func basicStat(get func(*BasicStats) *float64) func(*BasicStats, *AdvancedStats) *float64 {
	return func(b *BasicStats, _ *AdvancedStats) *float64 {
		if b == nil {
			return nil
		}
		return get(b)
	}
}

func advancedStat(get func(*AdvancedStats) *float64) func(*BasicStats, *AdvancedStats) *float64 {
	return func(_ *BasicStats, a *AdvancedStats) *float64 {
		if a == nil {
			return nil
		}
		return get(a)
	}
}

// categoryTable is the closed set of scoreable categories. Adding a category
// is a one-line change here.
var categoryTable = map[string]categorySpec{
	"PTS":  {value: basicStat(func(b *BasicStats) *float64 { return b.PtsPerGame })},
	"REB":  {value: basicStat(func(b *BasicStats) *float64 { return b.RebPerGame })},
	"AST":  {value: basicStat(func(b *BasicStats) *float64 { return b.AstPerGame })},
	"STL":  {value: basicStat(func(b *BasicStats) *float64 { return b.StlPerGame })},
	"BLK":  {value: basicStat(func(b *BasicStats) *float64 { return b.BlkPerGame })},
	"FG3M": {value: basicStat(func(b *BasicStats) *float64 { return b.Fg3mPerGame })},
	"TOV":  {value: basicStat(func(b *BasicStats) *float64 { return b.TovPerGame }), lowerIsBetter: true},
	"MIN":  {value: basicStat(func(b *BasicStats) *float64 { return b.MinPerGame })},
	"GP": {value: func(b *BasicStats, _ *AdvancedStats) *float64 {
		if b == nil || b.GP == nil {
			return nil
		}
		f := float64(*b.GP)
		return &f
	}},
	"FG_PCT":     {value: basicStat(func(b *BasicStats) *float64 { return b.FgPct })},
	"FG3_PCT":    {value: basicStat(func(b *BasicStats) *float64 { return b.Fg3Pct })},
	"FT_PCT":     {value: basicStat(func(b *BasicStats) *float64 { return b.FtPct })},
	"TS_PCT":     {value: advancedStat(func(a *AdvancedStats) *float64 { return a.TsPct })},
	"USG_PCT":    {value: advancedStat(func(a *AdvancedStats) *float64 { return a.UsgPct })},
	"WS":         {value: advancedStat(func(a *AdvancedStats) *float64 { return a.Ws })},
	"PIE":        {value: advancedStat(func(a *AdvancedStats) *float64 { return a.Pie })},
	"OFF_RATING": {value: advancedStat(func(a *AdvancedStats) *float64 { return a.OffRating })},
	"DEF_RATING": {value: advancedStat(func(a *AdvancedStats) *float64 { return a.DefRating }), lowerIsBetter: true},
	"NET_RATING": {value: advancedStat(func(a *AdvancedStats) *float64 { return a.NetRating })},
	"AST_PCT":    {value: advancedStat(func(a *AdvancedStats) *float64 { return a.AstPct })},
	"REB_PCT":    {value: advancedStat(func(a *AdvancedStats) *float64 { return a.RebPct })},
}

// NormalizeCategory canonicalizes a caller-supplied category code: uppercase
// with any trailing _PER_GAME suffix stripped. The result may still be
// outside the category table; that is recorded, not rejected.
func NormalizeCategory(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	c = strings.TrimSuffix(c, "_PER_GAME")
	return c
}

// Recommend filters the candidate pool by playing-time eligibility, scores
// each survivor against the requested categories, and returns the top-N by
// total score.
//
// The pool is iterated sequentially, one reconciliation fetch per candidate.
// This is the dominant latency cost of the endpoint and is deliberate; the
// memo store keeps repeat calls cheap.
func (s *Service) Recommend(ctx context.Context, pool []PoolPlayer, req RecommendationRequest) []RecommendationCandidate {
	excluded := make(map[int]bool, len(req.ExcludedPlayerIDs))
	for _, id := range req.ExcludedPlayerIDs {
		excluded[id] = true
	}

	categories := make([]string, 0, len(req.TargetCategories))
	for _, code := range req.TargetCategories {
		categories = append(categories, NormalizeCategory(code))
	}

	opts := FetchOptions{Regular: true, Basic: true, Advanced: true}
	candidates := make([]RecommendationCandidate, 0, len(pool))
	for _, player := range pool {
		if excluded[player.ID] {
			continue
		}
		profile, err := s.BuildProfile(ctx, player.ID, opts)
		if err != nil || profile == nil {
			continue
		}
		seasons := profile.HistoricalRegularSeasons
		if len(seasons) == 0 {
			continue
		}
		latest := seasons[len(seasons)-1]
		if !eligible(latest.Basic) {
			continue
		}

		candidates = append(candidates, scoreCandidate(player, latest, categories))
	}

	// Stable: ties keep the pool's original iteration order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RecommendationScore > candidates[j].RecommendationScore
	})

	if len(candidates) > req.NumRecommendations {
		candidates = candidates[:req.NumRecommendations]
	}
	return candidates
}

// eligible applies the fixed playing-time floor to a candidate's latest
// regular season.
func eligible(basic *BasicStats) bool {
	if basic == nil {
		return false
	}
	if basic.GP == nil || *basic.GP < minGamesPlayed {
		return false
	}
	if basic.MinPerGame == nil || *basic.MinPerGame < minMinutesPerGame {
		return false
	}
	return true
}

func scoreCandidate(player PoolPlayer, latest SeasonRecord, categories []string) RecommendationCandidate {
	statValues := make(map[string]*float64, len(categories))
	var score float64
	for _, code := range categories {
		spec, known := categoryTable[code]
		if !known {
			statValues[code] = nil
			continue
		}
		v := spec.value(latest.Basic, latest.Advanced)
		statValues[code] = v
		if v == nil {
			continue
		}
		score += scoreContribution(code, spec, *v, latest.Basic)
	}

	return RecommendationCandidate{
		PlayerID:              player.ID,
		FullName:              player.FullName,
		RecommendationScore:   roundTo(score, 2),
		TargetedCategoryStats: statValues,
		LatestSeasonBrief:     latestSeasonBrief(latest.Basic),
	}
}

// scoreContribution computes one category's contribution to the total.
// FG_PCT and FT_PCT are volume-weighted so a high percentage on negligible
// attempts contributes little; TOV is the one hard-coded-negated category.
func scoreContribution(code string, spec categorySpec, value float64, basic *BasicStats) float64 {
	switch code {
	case "FG_PCT":
		return value * deref(basic.FgaPerGame) * 0.1
	case "FT_PCT":
		return value * deref(basic.FtaPerGame) * 0.1
	case "TOV":
		return -value
	}
	if spec.lowerIsBetter {
		return -value
	}
	return value
}

func latestSeasonBrief(basic *BasicStats) map[string]*float64 {
	brief := map[string]*float64{
		"min_per_game": basic.MinPerGame,
		"pts_per_game": basic.PtsPerGame,
		"reb_per_game": basic.RebPerGame,
		"ast_per_game": basic.AstPerGame,
	}
	if basic.GP != nil {
		gp := float64(*basic.GP)
		brief["gp"] = &gp
	} else {
		brief["gp"] = nil
	}
	return brief
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
