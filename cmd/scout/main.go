// Command scout is the Hoopsight exploration CLI. It talks to the upstream
// stats provider directly, without going through the HTTP server.
//
// Usage:
//
//	hoopsight-scout resolve "LeBron James"
//	hoopsight-scout profile lebron-james --season-type regular --stats-mode all
//	hoopsight-scout recommend --categories PTS,AST --count 5
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hoopsight/hoopsight/internal/cache"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/directory"
	"github.com/hoopsight/hoopsight/internal/nba"
	"github.com/hoopsight/hoopsight/internal/stats"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "hoopsight-scout",
		Short: "Hoopsight player statistics CLI",
	}

	root.AddCommand(resolveCmd())
	root.AddCommand(profileCmd())
	root.AddCommand(recommendCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// services builds the provider client and domain services the commands share.
func services() (*directory.Service, *stats.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store := cache.New(true)
	client := nba.NewClient(cfg.StatsBaseURL, cfg.StatsRequestsPerMinute, cfg.StatsTimeout, logger)
	return directory.New(client, store, logger), stats.NewService(client, store, logger), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a player name or slug to its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _, err := services()
			if err != nil {
				return err
			}
			ctx := context.Background()
			id, err := dir.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"player_id":   id,
				"player_name": dir.ResolveName(ctx, id),
			})
		},
	}
}

func profileCmd() *cobra.Command {
	var seasonType, statsMode string
	cmd := &cobra.Command{
		Use:   "profile <name>",
		Short: "Fetch a player's reconciled season and career statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, profiles, err := services()
			if err != nil {
				return err
			}
			ctx := context.Background()

			opts := stats.AllFetchOptions()
			switch seasonType {
			case "regular":
				opts.Playoffs = false
			case "playoffs":
				opts.Regular = false
			case "all":
			default:
				return fmt.Errorf("unknown season type %q", seasonType)
			}
			switch statsMode {
			case "basic":
				opts.Advanced = false
			case "advanced":
				opts.Basic = false
			case "all":
			default:
				return fmt.Errorf("unknown stats mode %q", statsMode)
			}

			id, err := dir.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			profile, err := profiles.BuildProfile(ctx, id, opts)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"player_id":   id,
				"player_name": dir.ResolveName(ctx, id),
				"profile":     profile,
			})
		},
	}
	cmd.Flags().StringVar(&seasonType, "season-type", "all", "regular, playoffs, or all")
	cmd.Flags().StringVar(&statsMode, "stats-mode", "all", "basic, advanced, or all")
	return cmd
}

func recommendCmd() *cobra.Command {
	var categories []string
	var count int
	var excluded []int
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the active-player pool against statistical categories",
		Long: `Rank the active-player pool against statistical categories.

Fetches every active player's latest season sequentially; expect this to
take a while against the live provider.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(categories) == 0 {
				return fmt.Errorf("at least one category is required")
			}
			dir, profiles, err := services()
			if err != nil {
				return err
			}
			ctx := context.Background()

			active, err := dir.ActivePlayers(ctx)
			if err != nil {
				return err
			}
			pool := make([]stats.PoolPlayer, 0, len(active))
			for _, p := range active {
				pool = append(pool, stats.PoolPlayer{ID: p.ID, FullName: p.FullName})
			}

			recs := profiles.Recommend(ctx, pool, stats.RecommendationRequest{
				TargetCategories:   categories,
				NumRecommendations: count,
				ExcludedPlayerIDs:  excluded,
			})
			return printJSON(map[string]any{"recommendations": recs})
		},
	}
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "target categories (e.g. PTS,REB,TOV)")
	cmd.Flags().IntVar(&count, "count", 5, "number of recommendations (1-20)")
	cmd.Flags().IntSliceVar(&excluded, "exclude", nil, "player IDs to exclude")
	return cmd
}
