package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hoopsight/hoopsight/internal/api/respond"
	"github.com/hoopsight/hoopsight/internal/stats"
)

const (
	defaultRecommendations = 5
	maxRecommendations     = 20
)

type recommendationRequest struct {
	TargetCategories   []string `json:"target_categories"`
	NumRecommendations int      `json:"num_recommendations"`
	ExcludedPlayerIDs  []int    `json:"excluded_player_ids"`
}

type recommendationResponse struct {
	Recommendations []stats.RecommendationCandidate `json:"recommendations"`
}

// RecommendByCategories ranks the active-player pool against the requested
// statistical categories.
// @Summary Recommend players by category
// @Description Filters the active pool by playing-time thresholds, scores each player per requested category, and returns the top N by total heuristic score.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body recommendationRequest true "Ranking criteria"
// @Success 200 {object} recommendationResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /recommendations/categories [post]
func (h *Handler) RecommendByCategories(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if len(req.TargetCategories) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_CATEGORIES", "target_categories must not be empty")
		return
	}
	if req.NumRecommendations == 0 {
		req.NumRecommendations = defaultRecommendations
	}
	if req.NumRecommendations < 1 || req.NumRecommendations > maxRecommendations {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_COUNT", "num_recommendations must be between 1 and 20")
		return
	}

	ctx := r.Context()
	active, err := h.directory.ActivePlayers(ctx)
	if err != nil {
		// The pool listing is outside the per-fetch degradation contract:
		// without it there is nothing to rank.
		h.logger.Error("active player listing failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "UPSTREAM_ERROR",
			"Failed to fetch the active player pool")
		return
	}

	pool := make([]stats.PoolPlayer, 0, len(active))
	for _, p := range active {
		pool = append(pool, stats.PoolPlayer{ID: p.ID, FullName: p.FullName})
	}

	recommendations := h.profiles.Recommend(ctx, pool, stats.RecommendationRequest{
		TargetCategories:   req.TargetCategories,
		NumRecommendations: req.NumRecommendations,
		ExcludedPlayerIDs:  req.ExcludedPlayerIDs,
	})
	if recommendations == nil {
		recommendations = []stats.RecommendationCandidate{}
	}

	h.recordUsage("/recommendations/categories", map[string]any{
		"target_categories":   req.TargetCategories,
		"num_recommendations": req.NumRecommendations,
	})
	respond.WriteJSON(w, http.StatusOK, recommendationResponse{Recommendations: recommendations})
}
