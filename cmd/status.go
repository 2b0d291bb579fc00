package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/nexus-lottery-cli/internal/adapters/feed/ws"
	statusadapter "github.com/bnema/nexus-lottery-cli/internal/adapters/render/status"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var connect bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current lottery and, when connected, your position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			if connect {
				// Connection failures are reported in the rendered notifications.
				_, _ = app.orchestrator.Connect(ctx)
			} else if _, err := app.orchestrator.RefreshLotteryData(ctx); err != nil {
				return err
			}

			return writeView(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	cmd.Flags().BoolVar(&connect, "connect", false, "connect the wallet before rendering")

	return cmd
}

func newConnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect the wallet and check it is on the expected network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			_, err := app.orchestrator.Connect(ctx)
			if renderErr := writeView(cmd, app, false); renderErr != nil {
				return errors.Join(err, renderErr)
			}
			return err
		},
	}
}

func newBalanceCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show the native balance of the wallet account or of address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account common.Address
			if len(args) == 1 {
				var err error
				if account, err = parseAddressArg(args[0]); err != nil {
					return err
				}
			}

			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			if _, err := app.conn.Connect(ctx); err != nil && !errors.Is(err, domain.ErrWrongNetwork) {
				return err
			}
			if account == (common.Address{}) {
				account = app.conn.Session().Account
			}

			balance, err := app.conn.Balance(ctx, account)
			if err != nil {
				return err
			}

			currency := app.cfg.Network.Currency
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", account.Hex(), units.FormatUnits(balance, currency.Decimals), currency.Symbol)
			return err
		},
	}
}

func writeView(cmd *cobra.Command, app *app, asJSON bool) error {
	view := app.orchestrator.View()

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ws.NewViewPayload(view))
	}

	rendered, err := app.render(view, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func parseAddressArg(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}
	return common.HexToAddress(raw), nil
}
