package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage keystore passphrases",
	}

	cmd.AddCommand(
		newSecretSetCmd(app),
		newSecretRemoveCmd(app),
	)

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "set <address>",
		Short: "Store the passphrase that unlocks a keystore account",
		Long:  "Store the passphrase that unlocks a keystore account. Without --passphrase the first line of stdin is used.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := parseAddressArg(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("passphrase") {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read passphrase from stdin: %w", err)
				}
				passphrase = strings.TrimRight(line, "\r\n")
			}
			if passphrase == "" {
				return errors.New("passphrase is empty")
			}

			key := ports.KeystorePassphraseKey(account)
			if err := app.secrets.Put(cmd.Context(), key, passphrase); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored passphrase for %s\n", account.Hex())
			return err
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "keystore passphrase")

	return cmd
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Forget the passphrase of a keystore account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := parseAddressArg(args[0])
			if err != nil {
				return err
			}

			if err := app.secrets.Delete(cmd.Context(), ports.KeystorePassphraseKey(account)); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed passphrase for %s\n", account.Hex())
			return err
		},
	}
}
