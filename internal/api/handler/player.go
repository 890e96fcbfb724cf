package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hoopsight/hoopsight/internal/api/respond"
	"github.com/hoopsight/hoopsight/internal/directory"
	"github.com/hoopsight/hoopsight/internal/stats"
)

// playerProfileResponse is the wire shape of a reconciled profile.
type playerProfileResponse struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	*stats.PlayerProfile
}

var errInvalidFilter = errors.New("filters select nothing")

// parseFetchOptions maps the season_type and stats_mode query parameters to
// fetch options. An empty parameter means "all". errInvalidFilter is
// returned only when both dimensions select nothing.
func parseFetchOptions(q url.Values) (stats.FetchOptions, error) {
	var opts stats.FetchOptions

	switch q.Get("season_type") {
	case "regular":
		opts.Regular = true
	case "playoffs":
		opts.Playoffs = true
	case "all", "":
		opts.Regular = true
		opts.Playoffs = true
	}

	switch q.Get("stats_mode") {
	case "basic":
		opts.Basic = true
	case "advanced":
		opts.Advanced = true
	case "all", "":
		opts.Basic = true
		opts.Advanced = true
	}

	if !opts.Regular && !opts.Playoffs && !opts.Basic && !opts.Advanced {
		return opts, errInvalidFilter
	}
	return opts, nil
}

// resolveAndBuild resolves one name/slug and builds its profile response.
func (h *Handler) resolveAndBuild(r *http.Request, nameOrSlug string, opts stats.FetchOptions) (*playerProfileResponse, error) {
	ctx := r.Context()
	id, err := h.directory.ResolveID(ctx, nameOrSlug)
	if err != nil {
		return nil, err
	}
	profile, err := h.profiles.BuildProfile(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	return &playerProfileResponse{
		PlayerID:      id,
		PlayerName:    h.directory.ResolveName(ctx, id),
		PlayerProfile: profile,
	}, nil
}

// GetPlayer returns a player's reconciled season and career statistics.
// @Summary Get player profile
// @Description Returns per-season and career statistics (basic and advanced) for one player. Partial upstream availability degrades to null fields, never an error.
// @Tags players
// @Produce json
// @Param name path string true "Player name or slug (e.g. lebron-james)"
// @Param season_type query string false "Season type filter" Enums(regular, playoffs, all)
// @Param stats_mode query string false "Stats mode filter" Enums(basic, advanced, all)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /player/{name} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	opts, err := parseFetchOptions(r.URL.Query())
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FILTER",
			"season_type and stats_mode select no data")
		return
	}

	resp, err := h.resolveAndBuild(r, name, opts)
	if err != nil {
		h.writeResolveError(w, err, "Player not found")
		return
	}

	h.recordUsage("/player", map[string]any{
		"name":        name,
		"season_type": r.URL.Query().Get("season_type"),
		"stats_mode":  r.URL.Query().Get("stats_mode"),
	})
	respond.WriteJSON(w, http.StatusOK, resp)
}

// ComparePlayers returns two players' profiles keyed by the input slugs.
// @Summary Compare two players
// @Tags players
// @Produce json
// @Param player1 query string true "First player name or slug"
// @Param player2 query string true "Second player name or slug"
// @Param season_type query string false "Season type filter" Enums(regular, playoffs, all)
// @Param stats_mode query string false "Stats mode filter" Enums(basic, advanced, all)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /compare [get]
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	player1 := q.Get("player1")
	player2 := q.Get("player2")
	if player1 == "" || player2 == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PLAYER",
			"player1 and player2 query parameters are required")
		return
	}

	opts, err := parseFetchOptions(q)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FILTER",
			"season_type and stats_mode select no data")
		return
	}

	result := make(map[string]*playerProfileResponse, 2)
	for _, slug := range []string{player1, player2} {
		resp, err := h.resolveAndBuild(r, slug, opts)
		if err != nil {
			h.writeResolveError(w, err, fmt.Sprintf("Player '%s' not found", slug))
			return
		}
		result[slug] = resp
	}

	h.recordUsage("/compare", map[string]any{"player1": player1, "player2": player2})
	respond.WriteJSON(w, http.StatusOK, result)
}

// writeResolveError maps resolution and orchestration failures to the wire.
// Upstream details never leak into 500 bodies.
func (h *Handler) writeResolveError(w http.ResponseWriter, err error, notFoundDetail string) {
	if errors.Is(err, directory.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", notFoundDetail)
		return
	}
	h.logger.Error("profile build failed", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "UPSTREAM_ERROR",
		"Failed to fetch player data")
}

// recordUsage appends one row to the usage side channel, fire-and-forget.
func (h *Handler) recordUsage(endpoint string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.usage.Record(endpoint, string(body))
}
