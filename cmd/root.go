// Package cmd implements the staticdatagen command line interface.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sebastienrousseau/staticdatagen/internal/config"
	"github.com/sebastienrousseau/staticdatagen/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	logger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "staticdatagen",
	Short: "Generate static site metadata files",
	Long: `staticdatagen generates the metadata artifacts of a static site:
CNAME records, humans.txt, manifest.json, robots.txt, security.txt,
sitemaps and tag indexes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger = logging.NewLogger(logging.Config{Level: level})
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// accept underscored flag spellings, e.g. --log_level
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default .staticdatagen.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
}

// initConfig wires the config file and environment into viper. A
// missing default config file is fine; anything else is an error the
// command reports, never an exit from inside the CLI layer.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".staticdatagen")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// loadConfig resolves the active configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitKeyValues parses repeated key=value flags into a map.
func splitKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
