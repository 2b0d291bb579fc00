package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/nexus-lottery-cli/internal/application"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/spf13/cobra"
)

type submitFunc func(ctx context.Context) (domain.PendingTx, error)

func newBuyCmd(app *app) *cobra.Command {
	var count uint64
	var lotteryID uint64

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy tickets in the current lottery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.transact(cmd, func(ctx context.Context) (domain.PendingTx, error) {
				return app.orchestrator.BuyTickets(ctx, application.BuyTicketsCommand{
					LotteryID: lotteryID,
					Count:     count,
				})
			})
		},
	}

	cmd.Flags().Uint64VarP(&count, "count", "n", 1, "number of tickets")
	cmd.Flags().Uint64Var(&lotteryID, "lottery", 0, "lottery id (default current lottery)")

	return cmd
}

func newWithdrawCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw your lottery winnings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.transact(cmd, app.orchestrator.WithdrawWinnings)
		},
	}
}

func newCompleteCmd(app *app) *cobra.Command {
	var lotteryID uint64

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Draw the winner of a lottery that has ended",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.transact(cmd, func(ctx context.Context) (domain.PendingTx, error) {
				return app.orchestrator.CompleteLottery(ctx, application.CompleteLotteryCommand{LotteryID: lotteryID})
			})
		},
	}

	cmd.Flags().Uint64Var(&lotteryID, "lottery", 0, "lottery id (default current lottery)")

	return cmd
}

// transact connects the wallet, submits one transaction and waits for it to
// be mined. The notifications raised on the way are printed last.
func (a *app) transact(cmd *cobra.Command, submit submitFunc) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	connectCtx, cancel := a.withTimeout(ctx)
	_, err := a.orchestrator.Connect(connectCtx)
	cancel()
	if err != nil {
		return a.finish(cmd, err)
	}

	submitCtx, cancel := a.withTimeout(ctx)
	pending, err := submit(submitCtx)
	cancel()
	if err != nil {
		return a.finish(cmd, err)
	}

	_, _ = fmt.Fprintf(out, "transaction: %s\n", pending.Hash.Hex())
	if link := a.cfg.Network.TxURL(pending.Hash.Hex()); link != "" {
		_, _ = fmt.Fprintf(out, "explorer: %s\n", link)
	}

	var receipt domain.Receipt
	err = runSpinner(ctx, cmd.ErrOrStderr(), confirmationLabel, func(ctx context.Context) error {
		var awaitErr error
		receipt, awaitErr = a.orchestrator.Await(ctx, pending)
		return awaitErr
	})
	if err == nil {
		_, _ = fmt.Fprintf(out, "confirmed in block %d\n", receipt.BlockNumber)
	}
	return a.finish(cmd, err)
}

func (a *app) finish(cmd *cobra.Command, err error) error {
	for _, n := range a.notes.Active() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", n.Severity, n.Message)
	}
	return err
}
