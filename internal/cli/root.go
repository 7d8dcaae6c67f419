package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	StorePath  string
	Verbose    bool
}

// NewRootCommand creates the root command for the pinvault CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pinvault",
		Short: "PIN-vault account manager",
		Long: "pinvault issues quality-checked PINs, authenticates users against a\n" +
			"flat-file account store, and enforces a wrong-attempt lockout policy.",
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "db", "", "account store file (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))

	return cmd
}
