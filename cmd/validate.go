package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/staticdatagen/internal/cname"
)

var validateCmd = &cobra.Command{
	Use:   "validate DOMAIN...",
	Short: "Validate domain names against CNAME record rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed int
		for _, domain := range args {
			validated, err := cname.ValidateDomain(domain)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s: %v\n", domain, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\n", validated)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d domain(s) invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
