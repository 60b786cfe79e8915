package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/staticdatagen/internal/site"
	"github.com/sebastienrousseau/staticdatagen/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content directory and regenerate on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		builder := site.NewBuilder(cfg, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// initial build before watching
		if _, err := builder.Build(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "initial build: %v\n", err)
		}

		w, err := watcher.New(cfg.Content.Dir, watchDebounce, logger)
		if err != nil {
			return err
		}
		w.AddFilter(watcher.MarkdownFilter)
		w.AddHandler(func(ctx context.Context, paths []string) error {
			_, err := builder.Build(ctx)
			return err
		})

		fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", cfg.Content.Dir)
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond,
		"delay before rebuilding after a change")
	rootCmd.AddCommand(watchCmd)
}
