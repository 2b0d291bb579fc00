package cmd

import (
	"fmt"

	statusadapter "github.com/bnema/nexus-lottery-cli/internal/adapters/render/status"
	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed lotteries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			lotteries, err := app.history.LotteryHistory(ctx, limit)
			if err != nil {
				return err
			}

			rendered, err := statusadapter.RenderHistory(lotteries, app.cfg.Network)
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultHistoryLimit, "maximum number of lotteries")

	return cmd
}

func newStatsCmd(app *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show global lottery statistics, or those of one player",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			var rendered string
			if user != "" {
				account, err := parseAddressArg(user)
				if err != nil {
					return err
				}
				stats, err := app.history.UserStatistics(ctx, account)
				if err != nil {
					return err
				}
				if rendered, err = statusadapter.RenderUserStatistics(stats, app.cfg.Network); err != nil {
					return fmt.Errorf("render statistics: %w", err)
				}
			} else {
				stats, err := app.history.GlobalStatistics(ctx)
				if err != nil {
					return err
				}
				if rendered, err = statusadapter.RenderGlobalStatistics(stats, app.cfg.Network); err != nil {
					return fmt.Errorf("render statistics: %w", err)
				}
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "player address")

	return cmd
}
