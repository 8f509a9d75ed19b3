package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionActiveCmd())
	cmd.AddCommand(newSessionUpdateCmd())
	cmd.AddCommand(newSessionEndCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"mode": mode}

			var result Session
			if err := client.Post("/sessions/start", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Game mode (required)")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get("/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionActiveCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "active",
		Short: "List active sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/sessions/active?limit=%d", limit)

			var result SessionPage
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum sessions to list")

	return cmd
}

func newSessionUpdateCmd() *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "update <session-id>",
		Short: "Update the current score of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("score") {
				req["currentScore"] = score
			}

			var result Session
			if err := client.Patch("/sessions/"+args[0]+"/update", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Current score")

	return cmd
}

func newSessionEndCmd() *cobra.Command {
	var finalScore int

	cmd := &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session with a final score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"finalScore": finalScore}

			var result Session
			if err := client.Post("/sessions/"+args[0]+"/end", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&finalScore, "final-score", 0, "Final score (required)")
	_ = cmd.MarkFlagRequired("final-score")

	return cmd
}
