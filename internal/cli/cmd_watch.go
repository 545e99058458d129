package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/store"
	"github.com/tengjizhang/linkconv/internal/watch"
)

func newWatchCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var format string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-convert a file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			var only emit.Format
			if format != "" {
				if only, err = parseFormatFlag(format); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = app.cfg.Debounce
			}

			output := getOutput()
			render := func(ctx context.Context, path string) {
				data, err := os.ReadFile(path)
				if err != nil {
					app.logger.Error("Read watched file", "path", path, "error", err)
					return
				}
				if err := writeConversion(cmd, app, output, string(data), 0, only); err != nil {
					app.logger.Error("Write conversion", "path", path, "error", err)
				}
			}

			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("%w: watch %s: %v", store.ErrInvalidInput, path, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fw, err := watch.NewFileWatcher(path, debounce, render)
			if err != nil {
				return err
			}
			render(ctx, path)
			return fw.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Only print one format: html, markdown, bbcode, raw, slack, json, refmd")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Idle time before re-converting")
	return cmd
}
