package nba

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hoopsight/hoopsight/internal/directory"
	"github.com/hoopsight/hoopsight/internal/stats"
)

// Result set names in the player profile response. Which pair is populated
// depends on the requested season type.
const (
	setSeasonsRegular  = "SeasonTotalsRegularSeason"
	setCareerRegular   = "CareerTotalsRegularSeason"
	setSeasonsPlayoffs = "SeasonTotalsPostSeason"
	setCareerPlayoffs  = "CareerTotalsPostSeason"

	setAllPlayers = "CommonAllPlayers"
)

// PlayerProfile fetches the season table and career-total row for one
// (per-mode, season-type) combination. Implements stats.ProfileFetcher.
func (c *Client) PlayerProfile(ctx context.Context, playerID int, perMode, seasonType string) (*stats.ProfileTables, error) {
	params := url.Values{
		"PlayerID":          {strconv.Itoa(playerID)},
		"PerMode36":         {perMode},
		"SeasonTypeAllStar": {seasonType},
		"LeagueIDNullable":  {""},
	}
	resp, err := c.get(ctx, "/playerprofilev2", params)
	if err != nil {
		return nil, fmt.Errorf("fetch player profile: %w", err)
	}

	seasonsSet, careerSet := setSeasonsRegular, setCareerRegular
	if seasonType == stats.SeasonTypePlayoffs {
		seasonsSet, careerSet = setSeasonsPlayoffs, setCareerPlayoffs
	}

	tables := &stats.ProfileTables{
		Seasons: resp.table(seasonsSet).rows(),
	}
	if careerRows := resp.table(careerSet).rows(); len(careerRows) > 0 {
		tables.CareerTotals = careerRows[0]
	}
	return tables, nil
}

// AllPlayers fetches the full player directory listing. Implements
// directory.Lister.
func (c *Client) AllPlayers(ctx context.Context) ([]directory.Player, error) {
	params := url.Values{
		"LeagueID":            {"00"},
		"IsOnlyCurrentSeason": {"0"},
	}
	resp, err := c.get(ctx, "/commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch player directory: %w", err)
	}

	rows := resp.table(setAllPlayers).rows()
	players := make([]directory.Player, 0, len(rows))
	for _, row := range rows {
		id := stats.SafeNumeric(row["PERSON_ID"], 0)
		if id == nil {
			continue
		}
		name, _ := row["DISPLAY_FIRST_LAST"].(string)
		active := stats.SafeNumeric(row["ROSTERSTATUS"], 0)
		players = append(players, directory.Player{
			ID:       int(*id),
			FullName: name,
			Active:   active != nil && *active == 1,
		})
	}
	return players, nil
}
