package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/staticdatagen/internal/site"
)

var generateMetadata []string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate all site artifacts into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		extra, err := splitKeyValues(generateMetadata)
		if err != nil {
			return err
		}
		for k, v := range extra {
			cfg.Metadata[k] = v
		}

		report, err := site.NewBuilder(cfg, logger).Build(cmd.Context())
		if report != nil {
			for _, name := range report.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
			}
			for _, ae := range report.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed %s: %v\n", ae.Artifact, ae.Err)
			}
		}
		return err
	},
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateMetadata, "metadata", "m", nil,
		"additional metadata as key=value (repeatable)")
	rootCmd.AddCommand(generateCmd)
}
