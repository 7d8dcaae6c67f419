package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewAdminCommand groups administrative subcommands. The listing view reads
// the store directly, bypassing authentication, and never shows PINs.
func NewAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}
	cmd.AddCommand(newAdminListCommand(opts))
	return cmd
}

func newAdminListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balance and lock state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, done, err := buildEngine(opts)
			if err != nil {
				return err
			}
			defer done()

			summaries, err := engine.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tBALANCE\tLOCKED")
			for _, s := range summaries {
				locked := "no"
				if s.Locked {
					locked = "yes"
				}
				fmt.Fprintf(w, "%s\t%.2f\t%s\n", s.Username, s.Balance, locked)
			}
			return w.Flush()
		},
	}
}
