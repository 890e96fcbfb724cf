package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hoopsight/hoopsight/internal/api/respond"
	"github.com/hoopsight/hoopsight/internal/stats"
)

type lineupRequest struct {
	Players []string `json:"players"`
}

type lineupResponse struct {
	LineupPlayers     []string           `json:"lineup_players"`
	AggregationMetric string             `json:"aggregation_metric"`
	AggregatedStats   map[string]float64 `json:"aggregated_stats_from_latest_season_summary"`
	Note              string             `json:"note"`
}

// AggregateLineup combines multiple players' latest-season summaries into
// team-level statistics.
// @Summary Aggregate a lineup
// @Description Averages or sums the latest-season summaries of the requested players. Players without summary data contribute nothing per field.
// @Tags lineup
// @Accept json
// @Produce json
// @Param metric query string false "Aggregation metric" Enums(avg, total) default(avg)
// @Param request body lineupRequest true "Lineup players"
// @Success 200 {object} lineupResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /lineup [post]
func (h *Handler) AggregateLineup(w http.ResponseWriter, r *http.Request) {
	var req lineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with a players list")
		return
	}
	if len(req.Players) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "EMPTY_LINEUP", "players list must not be empty")
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = stats.LineupMetricAvg
	}
	if metric != stats.LineupMetricAvg && metric != stats.LineupMetricTotal {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_METRIC", "metric must be 'avg' or 'total'")
		return
	}

	ctx := r.Context()
	opts := stats.FetchOptions{Regular: true, Basic: true, Advanced: true}
	names := make([]string, 0, len(req.Players))
	summaries := make([]*stats.LatestSeasonSummary, 0, len(req.Players))
	anySummary := false
	for _, slug := range req.Players {
		id, err := h.directory.ResolveID(ctx, slug)
		if err != nil {
			h.writeResolveError(w, err, fmt.Sprintf("Player '%s' not found in lineup", slug))
			return
		}
		profile, err := h.profiles.BuildProfile(ctx, id, opts)
		if err != nil {
			h.writeResolveError(w, err, "")
			return
		}
		names = append(names, h.directory.ResolveName(ctx, id))
		summaries = append(summaries, profile.LatestSeasonSummary)
		if profile.LatestSeasonSummary != nil {
			anySummary = true
		}
	}

	if !anySummary {
		respond.WriteError(w, http.StatusInternalServerError, "NO_SUMMARY_DATA",
			"No latest-season summary data available for any player in the lineup")
		return
	}

	aggregated, err := stats.AggregateLineup(summaries, metric)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_METRIC", err.Error())
		return
	}

	h.recordUsage("/lineup", map[string]any{"players": req.Players, "metric": metric})
	respond.WriteJSON(w, http.StatusOK, lineupResponse{
		LineupPlayers:     names,
		AggregationMetric: metric,
		AggregatedStats:   aggregated,
		Note:              "Aggregated from each player's latest regular-season summary; players without summary data are skipped per field.",
	})
}
