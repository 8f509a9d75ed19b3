package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Leaderboard commands",
	}

	cmd.AddCommand(newLeaderboardListCmd())
	cmd.AddCommand(newLeaderboardSubmitCmd())

	return cmd
}

func newLeaderboardListCmd() *cobra.Command {
	var mode string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ranked leaderboard entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/leaderboard?limit=%d&offset=%d", limit, offset)
			if mode != "" {
				path += "&mode=" + mode
			}

			var result LeaderboardPage
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Filter by game mode")
	cmd.Flags().IntVar(&limit, "limit", 100, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newLeaderboardSubmitCmd() *cobra.Command {
	var mode string
	var score, duration int

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a score",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"score": score,
				"mode":  mode,
			}
			if cmd.Flags().Changed("duration") {
				req["duration"] = duration
			}

			var result LeaderboardEntry
			if err := client.Post("/leaderboard/submit", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Score (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Game mode (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Run duration in seconds")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}
