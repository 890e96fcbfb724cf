package nba

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsight/hoopsight/internal/stats"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 6000, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func profilePayload() map[string]any {
	return map[string]any{
		"resource": "playerprofilev2",
		"resultSets": []map[string]any{
			{
				"name":    "SeasonTotalsRegularSeason",
				"headers": []string{"SEASON_ID", "TEAM_ABBREVIATION", "GP", "PTS"},
				"rowSet": [][]any{
					{"2021-22", "LAL", 56, 30.3},
					{"2022-23", "LAL", 55, 28.9},
				},
			},
			{
				"name":    "CareerTotalsRegularSeason",
				"headers": []string{"GP", "PTS"},
				"rowSet":  [][]any{{1421, 27.2}},
			},
			{
				"name":    "SeasonTotalsPostSeason",
				"headers": []string{"SEASON_ID", "TEAM_ABBREVIATION", "GP", "PTS"},
				"rowSet":  [][]any{{"2022-23", "LAL", 16, 24.5}},
			},
			{
				"name":    "CareerTotalsPostSeason",
				"headers": []string{"GP", "PTS"},
				"rowSet":  [][]any{{282, 28.7}},
			},
		},
	}
}

func TestPlayerProfileRegularSeason(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(profilePayload())
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	tables, err := c.PlayerProfile(context.Background(), 2544, stats.PerModeBasic, stats.SeasonTypeRegular)
	require.NoError(t, err)

	assert.Equal(t, "/playerprofilev2", gotPath)
	assert.Equal(t, []string{"2544"}, gotQuery["PlayerID"])
	assert.Equal(t, []string{"PerGame"}, gotQuery["PerMode36"])
	assert.Equal(t, []string{"Regular Season"}, gotQuery["SeasonTypeAllStar"])

	require.Len(t, tables.Seasons, 2)
	assert.Equal(t, "2021-22", tables.Seasons[0]["SEASON_ID"])
	assert.Equal(t, 28.9, tables.Seasons[1]["PTS"])
	require.NotNil(t, tables.CareerTotals)
	assert.Equal(t, 27.2, tables.CareerTotals["PTS"])
}

func TestPlayerProfilePlayoffsSelectsPostSeasonTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(profilePayload())
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	tables, err := c.PlayerProfile(context.Background(), 2544, stats.PerModeBasic, stats.SeasonTypePlayoffs)
	require.NoError(t, err)

	require.Len(t, tables.Seasons, 1)
	assert.Equal(t, 24.5, tables.Seasons[0]["PTS"])
	require.NotNil(t, tables.CareerTotals)
	assert.Equal(t, 28.7, tables.CareerTotals["PTS"])
}

func TestPlayerProfileMissingTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"resource": "playerprofilev2", "resultSets": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	tables, err := c.PlayerProfile(context.Background(), 2544, stats.PerModeBasic, stats.SeasonTypeRegular)
	require.NoError(t, err)
	assert.Empty(t, tables.Seasons)
	assert.Nil(t, tables.CareerTotals)
}

func TestPlayerProfileUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.PlayerProfile(context.Background(), 2544, stats.PerModeBasic, stats.SeasonTypeRegular)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRowZippingToleratesShortRows(t *testing.T) {
	rs := &resultSet{
		Headers: []string{"A", "B", "C"},
		RowSet:  [][]any{{1.0, 2.0}},
	}
	rows := rs.rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0]["A"])
	assert.Equal(t, 2.0, rows[0]["B"])
	_, ok := rows[0]["C"]
	assert.False(t, ok)
}

func TestRowsNilReceiver(t *testing.T) {
	var rs *resultSet
	assert.Nil(t, rs.rows())
}

func TestAllPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commonallplayers", r.URL.Path)
		assert.Equal(t, "00", r.URL.Query().Get("LeagueID"))
		assert.Equal(t, "0", r.URL.Query().Get("IsOnlyCurrentSeason"))
		json.NewEncoder(w).Encode(map[string]any{
			"resource": "commonallplayers",
			"resultSets": []map[string]any{{
				"name":    "CommonAllPlayers",
				"headers": []string{"PERSON_ID", "DISPLAY_FIRST_LAST", "ROSTERSTATUS"},
				"rowSet": [][]any{
					{2544, "LeBron James", 1},
					{893, "Michael Jordan", 0},
					{nil, "Ghost Row", 1},
				},
			}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	players, err := c.AllPlayers(context.Background())
	require.NoError(t, err)

	require.Len(t, players, 2)
	assert.Equal(t, 2544, players[0].ID)
	assert.Equal(t, "LeBron James", players[0].FullName)
	assert.True(t, players[0].Active)
	assert.Equal(t, 893, players[1].ID)
	assert.False(t, players[1].Active)
}

func TestGetRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(profilePayload())
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.PlayerProfile(ctx, 2544, stats.PerModeBasic, stats.SeasonTypeRegular)
	require.Error(t, err)
}
