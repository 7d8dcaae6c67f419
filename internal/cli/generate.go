package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sachk/pinvault/pin"
)

// NewGenerateCommand prints a quality-checked PIN without touching any
// store. Useful for provisioning PINs out of band.
func NewGenerateCommand(opts *RootOptions) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a PIN that passes the quality policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generated, err := pin.NewGenerator(pin.Config{}).Generate(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), generated)
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "length", pin.LengthStandard, "PIN length, 4 or 6")

	return cmd
}
