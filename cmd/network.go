package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newNetworkCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage the networks known to the wallet",
	}

	cmd.AddCommand(
		newNetworkListCmd(app),
		newNetworkAddCmd(app),
		newNetworkSwitchCmd(app),
	)

	return cmd
}

func newNetworkListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the lottery network and the registered networks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			networks, err := app.networks.List(cmd.Context())
			if err != nil {
				return err
			}

			expected := app.cfg.Network
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "*\t%s\t%s\t%s\n", expected.ChainID, expected.Name, expected.PrimaryRPC())
			for _, network := range networks {
				if network.ChainID == expected.ChainID {
					continue
				}
				_, _ = fmt.Fprintf(out, " \t%s\t%s\t%s\n", network.ChainID, network.Name, network.PrimaryRPC())
			}

			return nil
		},
	}
}

func newNetworkAddCmd(app *app) *cobra.Command {
	var (
		chainID      string
		network      domain.Network
		rpcURLs      []string
		wsURLs       []string
		explorerURLs []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a network so the wallet can switch to it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := domain.ParseChainID(strings.TrimSpace(chainID))
			if err != nil {
				return err
			}
			network.ChainID = id
			network.RPCURLs = rpcURLs
			network.WSURLs = wsURLs
			network.ExplorerURLs = explorerURLs

			if err := app.networks.Save(cmd.Context(), network); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) to %s\n", network.Name, network.ChainID, app.networks.Path())
			return err
		},
	}

	cmd.Flags().StringVar(&chainID, "chain-id", "", "chain id, decimal or 0x-prefixed hex")
	cmd.Flags().StringVar(&network.Name, "name", "", "network name")
	cmd.Flags().StringSliceVar(&rpcURLs, "rpc", nil, "rpc url (repeatable)")
	cmd.Flags().StringSliceVar(&wsURLs, "ws", nil, "websocket url (repeatable)")
	cmd.Flags().StringSliceVar(&explorerURLs, "explorer", nil, "block explorer url (repeatable)")
	cmd.Flags().StringVar(&network.FaucetURL, "faucet", "", "faucet url")
	cmd.Flags().StringVar(&network.Currency.Name, "currency-name", "Ether", "native currency name")
	cmd.Flags().StringVar(&network.Currency.Symbol, "currency-symbol", "ETH", "native currency symbol")
	cmd.Flags().Uint8Var(&network.Currency.Decimals, "currency-decimals", 18, "native currency decimals")
	_ = cmd.MarkFlagRequired("chain-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rpc")

	return cmd
}

func newNetworkSwitchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch",
		Short: "Ask the wallet to switch to the lottery network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			session, err := app.orchestrator.Connect(ctx)
			if err != nil && !errors.Is(err, domain.ErrWrongNetwork) {
				return app.finish(cmd, err)
			}
			if !session.IsCorrectNetwork {
				if session, err = app.orchestrator.SwitchNetwork(ctx); err != nil {
					return app.finish(cmd, err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wallet on %s (%s)\n", app.cfg.Network.Name, session.ChainID)
			return app.finish(cmd, nil)
		},
	}
}
