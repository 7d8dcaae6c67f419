package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sachk/pinvault"
)

// NewCreateCommand creates an account with a freshly generated PIN. The PIN
// is printed exactly once and never shown again.
func NewCreateCommand(opts *RootOptions) *cobra.Command {
	var (
		length  int
		balance float64
	)

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account and print its generated PIN once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, fileCfg, done, err := buildEngine(opts)
			if err != nil {
				return err
			}
			defer done()

			if balance < 0 {
				balance = fileCfg.StartingBalance
			}

			res, err := engine.CreateAccount(cmd.Context(), pinvault.CreateAccountRequest{
				Username:        args[0],
				PINLength:       length,
				StartingBalance: balance,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account %q created with starting balance %.2f.\n",
				res.Record.Username, res.Record.Balance)
			fmt.Fprintf(out, "Generated PIN: %s\n", res.GeneratedPIN)
			fmt.Fprintln(out, "Store it securely; it will not be shown again.")
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "length", 0, "PIN length, 4 or 6 (default from config)")
	cmd.Flags().Float64Var(&balance, "balance", -1, "starting balance (default from config)")

	return cmd
}
