package cmd

import "github.com/spf13/cobra"

const skipWiringAnnotation = "nxl/skip-wiring"

func Execute() error {
	rootCmd, app := newRootCmd()
	defer app.close()
	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "nxl",
		Short:         "Nexus Lottery CLI (nxl): play the on-chain lottery from the terminal",
		Long:          "nxl connects a wallet to the Nexus lottery contract, shows the current draw and your position, buys tickets, withdraws winnings and streams contract events.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsWiring(cmd) {
				return nil
			}
			return app.wire(cmd.Context(), *opts, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default $HOME/.config/nxl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "console log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newConnectCmd(app),
		newBalanceCmd(app),
		newBuyCmd(app),
		newWithdrawCmd(app),
		newCompleteCmd(app),
		newHistoryCmd(app),
		newStatsCmd(app),
		newNetworkCmd(app),
		newSecretCmd(app),
		newWatchCmd(app),
		newAdminCmd(app),
	)

	return rootCmd, app
}

func skipsWiring(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipWiringAnnotation] == "true" {
			return true
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}
