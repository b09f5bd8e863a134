package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/output"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top players by XP",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.Leaderboard.TopN
		}

		ctx := cmd.Context()
		svc, err := openServices(ctx, cfg)
		if err != nil {
			return err
		}
		defer svc.Close() // nolint:errcheck

		top, err := svc.players.Leaderboard(ctx, limit)
		if err != nil {
			return err
		}
		rendered, err := output.NewFormatter(format).FormatLeaderboard(top)
		if err != nil {
			return err
		}
		return emit(cmd, rendered)
	},
}

var leaderboardRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the redis leaderboard from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		svc, err := openServices(ctx, cfg)
		if err != nil {
			return err
		}
		defer svc.Close() // nolint:errcheck

		if svc.board == nil {
			return errors.New("leaderboard.backend is not redis; nothing to rebuild")
		}
		if err := svc.board.Rebuild(ctx); err != nil {
			return err
		}
		observability.CLILogger.Info("Leaderboard rebuilt", zap.String("key", cfg.Leaderboard.Redis.Key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	addOutputFlags(leaderboardCmd)
	leaderboardCmd.Flags().Int("limit", 0, "Number of players to show (default leaderboard.top_n)")
	leaderboardCmd.AddCommand(leaderboardRebuildCmd)
}
