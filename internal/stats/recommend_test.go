package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCandidate installs one player's latest regular season into the fake
// fetcher. Defaults clear both eligibility floors.
type candidateStats struct {
	gp    float64
	min   float64
	pts   float64
	stl   float64
	tov   float64
	fgPct float64
	fga   float64
	ftPct float64
	fta   float64
	tsPct float64
}

func seedCandidate(f *fakeFetcher, id int, c candidateStats) {
	if c.gp == 0 {
		c.gp = 70
	}
	if c.min == 0 {
		c.min = 30.0
	}
	f.set(id, PerModeBasic, SeasonTypeRegular, &ProfileTables{
		Seasons: []Row{{
			"SEASON_ID":         "2022-23",
			"TEAM_ABBREVIATION": "XYZ",
			"GP":                c.gp,
			"MIN":               c.min,
			"PTS":               c.pts,
			"STL":               c.stl,
			"TOV":               c.tov,
			"FG_PCT":            c.fgPct,
			"FGA":               c.fga,
			"FT_PCT":            c.ftPct,
			"FTA":               c.fta,
		}},
	})
	f.set(id, PerModeAdvanced, SeasonTypeRegular, &ProfileTables{
		Seasons: []Row{{
			"SEASON_ID": "2022-23",
			"TS_PCT":    c.tsPct,
		}},
	})
}

func testPool(n int) []PoolPlayer {
	pool := make([]PoolPlayer, 0, n)
	names := []string{"", "Player One", "Player Two", "Player Three", "Player Four", "Player Five", "Player Six"}
	for i := 1; i <= n; i++ {
		pool = append(pool, PoolPlayer{ID: i, FullName: names[i]})
	}
	return pool
}

func TestRecommendOrdersByScore(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 25.0, stl: 1.0})
	seedCandidate(f, 2, candidateStats{pts: 15.0, stl: 0.5})
	seedCandidate(f, 3, candidateStats{pts: 18.0, stl: 0.9})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(3), RecommendationRequest{
		TargetCategories:   []string{"PTS", "STL"},
		NumRecommendations: 2,
	})

	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].PlayerID)
	assert.Equal(t, "Player One", recs[0].FullName)
	assert.Equal(t, 26.0, recs[0].RecommendationScore)
	assert.Equal(t, 3, recs[1].PlayerID)
	assert.Greater(t, recs[0].RecommendationScore, recs[1].RecommendationScore)

	require.NotNil(t, recs[0].TargetedCategoryStats["PTS"])
	assert.Equal(t, 25.0, *recs[0].TargetedCategoryStats["PTS"])
	require.NotNil(t, recs[0].TargetedCategoryStats["STL"])
	assert.Equal(t, 1.0, *recs[0].TargetedCategoryStats["STL"])
}

func TestRecommendPointsMonotonicity(t *testing.T) {
	// Strictly more points, all else equal, never ranks lower.
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 21.3})
	seedCandidate(f, 2, candidateStats{pts: 21.4})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(2), RecommendationRequest{
		TargetCategories:   []string{"PTS"},
		NumRecommendations: 2,
	})
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[0].PlayerID)
}

func TestRecommendTurnoversLowerIsBetter(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{tov: 2.0})
	seedCandidate(f, 2, candidateStats{tov: 0.5})
	seedCandidate(f, 3, candidateStats{tov: 2.5})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(3), RecommendationRequest{
		TargetCategories:   []string{"TOV"},
		NumRecommendations: 1,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].PlayerID)
	assert.Equal(t, -0.5, recs[0].RecommendationScore)
}

func TestRecommendFgPctVolumeWeighted(t *testing.T) {
	// A high percentage on negligible attempts contributes little.
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{fgPct: 0.45, fga: 18.0})
	seedCandidate(f, 2, candidateStats{fgPct: 0.55, fga: 15.0})
	seedCandidate(f, 3, candidateStats{fgPct: 0.62, fga: 2.0})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(3), RecommendationRequest{
		TargetCategories:   []string{"FG_PCT"},
		NumRecommendations: 3,
	})
	require.Len(t, recs, 3)
	// 0.55*15*0.1 = 0.825 beats 0.45*18*0.1 = 0.81 beats 0.62*2*0.1 = 0.124.
	assert.Equal(t, 2, recs[0].PlayerID)
	assert.Equal(t, 1, recs[1].PlayerID)
	assert.Equal(t, 3, recs[2].PlayerID)
	require.NotNil(t, recs[0].TargetedCategoryStats["FG_PCT"])
	assert.Equal(t, 0.55, *recs[0].TargetedCategoryStats["FG_PCT"])
}

func TestRecommendEligibilityBoundaries(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{gp: 9, pts: 30.0})     // below games floor
	seedCandidate(f, 2, candidateStats{gp: 10, pts: 20.0})    // at games floor
	seedCandidate(f, 3, candidateStats{min: 14.9, pts: 25.0}) // below minutes floor
	seedCandidate(f, 4, candidateStats{min: 15.0, pts: 15.0}) // at minutes floor
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(4), RecommendationRequest{
		TargetCategories:   []string{"PTS"},
		NumRecommendations: 4,
	})

	ids := make(map[int]bool)
	for _, r := range recs {
		ids[r.PlayerID] = true
	}
	assert.False(t, ids[1], "gp below threshold must be excluded")
	assert.True(t, ids[2], "gp at threshold must be included")
	assert.False(t, ids[3], "minutes below threshold must be excluded")
	assert.True(t, ids[4], "minutes at threshold must be included")
}

func TestRecommendExcludedPlayers(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 25.0})
	seedCandidate(f, 2, candidateStats{pts: 18.0})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(2), RecommendationRequest{
		TargetCategories:   []string{"PTS"},
		NumRecommendations: 1,
		ExcludedPlayerIDs:  []int{1},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].PlayerID)
}

func TestRecommendUnknownCategory(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 25.0})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(1), RecommendationRequest{
		TargetCategories:   []string{"UNKNOWN_CAT", "PTS"},
		NumRecommendations: 1,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, 25.0, recs[0].RecommendationScore)
	require.Contains(t, recs[0].TargetedCategoryStats, "UNKNOWN_CAT")
	assert.Nil(t, recs[0].TargetedCategoryStats["UNKNOWN_CAT"])
}

func TestRecommendAbsentStatContributesZero(t *testing.T) {
	// TS_PCT lives on the advanced record; candidate 2's advanced fetch
	// yields nothing, so the category is null and contributes zero.
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 10.0, tsPct: 0.62})
	f.set(2, PerModeBasic, SeasonTypeRegular, &ProfileTables{
		Seasons: []Row{{
			"SEASON_ID": "2022-23",
			"GP":        70.0,
			"MIN":       30.0,
			"PTS":       12.0,
		}},
	})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(2), RecommendationRequest{
		TargetCategories:   []string{"PTS", "TS_PCT"},
		NumRecommendations: 2,
	})
	require.Len(t, recs, 2)

	for _, r := range recs {
		if r.PlayerID == 2 {
			assert.Equal(t, 12.0, r.RecommendationScore)
			require.Contains(t, r.TargetedCategoryStats, "TS_PCT")
			assert.Nil(t, r.TargetedCategoryStats["TS_PCT"])
		}
	}
}

func TestRecommendCategoryNormalization(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 1, candidateStats{pts: 25.0})
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(1), RecommendationRequest{
		TargetCategories:   []string{"pts_per_game"},
		NumRecommendations: 1,
	})
	require.Len(t, recs, 1)
	require.Contains(t, recs[0].TargetedCategoryStats, "PTS")
	assert.Equal(t, 25.0, recs[0].RecommendationScore)
}

func TestRecommendEmptyPool(t *testing.T) {
	svc := newTestService(newFakeFetcher())
	recs := svc.Recommend(context.Background(), nil, RecommendationRequest{
		TargetCategories:   []string{"PTS"},
		NumRecommendations: 5,
	})
	assert.Empty(t, recs)
}

func TestRecommendSkipsPlayersWithoutSeasons(t *testing.T) {
	f := newFakeFetcher()
	seedCandidate(f, 2, candidateStats{pts: 15.0})
	// Player 1 has no rows at all.
	svc := newTestService(f)

	recs := svc.Recommend(context.Background(), testPool(2), RecommendationRequest{
		TargetCategories:   []string{"PTS"},
		NumRecommendations: 5,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].PlayerID)
}
