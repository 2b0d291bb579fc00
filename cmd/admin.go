package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Owner-only lottery administration",
	}

	cmd.AddCommand(
		newAdminOwnerCmd(app),
		newAdminCreateCmd(app),
		newAdminTxCmd(app, "pause", "Pause ticket sales", func(ctx context.Context) (domain.PendingTx, error) {
			return app.admin.Pause(ctx)
		}),
		newAdminTxCmd(app, "unpause", "Resume ticket sales", func(ctx context.Context) (domain.PendingTx, error) {
			return app.admin.Unpause(ctx)
		}),
		newAdminTxCmd(app, "withdraw", "Withdraw the owner's collected fees", func(ctx context.Context) (domain.PendingTx, error) {
			return app.admin.WithdrawOwnerFunds(ctx)
		}),
	)

	return cmd
}

func newAdminOwnerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owner [address]",
		Short: "Check whether the wallet account, or address, owns the contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			var account common.Address
			if len(args) == 1 {
				var err error
				if account, err = parseAddressArg(args[0]); err != nil {
					return err
				}
			} else {
				session, err := app.orchestrator.Connect(ctx)
				if err != nil && !errors.Is(err, domain.ErrWrongNetwork) {
					return err
				}
				account = session.Account
			}

			owner, err := app.contract.Owner(ctx)
			if err != nil {
				return err
			}
			isOwner, err := app.admin.IsOwner(ctx, account)
			if err != nil {
				return err
			}
			paused, err := app.admin.Paused(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "contract owner: %s\n", owner.Hex())
			_, _ = fmt.Fprintf(out, "%s is owner: %t\n", account.Hex(), isOwner)
			_, err = fmt.Fprintf(out, "paused: %t\n", paused)
			return err
		},
	}
}

func newAdminCreateCmd(app *app) *cobra.Command {
	var price string
	var maxTickets uint64
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new lottery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ticketPrice, err := units.ParseUnits(price, app.cfg.Network.Currency.Decimals)
			if err != nil {
				return fmt.Errorf("ticket price: %w", err)
			}

			return app.transact(cmd, func(ctx context.Context) (domain.PendingTx, error) {
				return app.admin.CreateLottery(ctx, application.CreateLotteryCommand{
					TicketPrice: ticketPrice,
					MaxTickets:  maxTickets,
					Duration:    duration,
				})
			})
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "ticket price in the native currency, e.g. 0.01")
	cmd.Flags().Uint64Var(&maxTickets, "max-tickets", 100, "maximum number of tickets")
	cmd.Flags().DurationVar(&duration, "duration", 24*time.Hour, "how long ticket sales stay open")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newAdminTxCmd(app *app, use, short string, submit submitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.transact(cmd, submit)
		},
	}
}
