package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/config"
	"github.com/bimmerbailey/squash/internal/output"
	"github.com/bimmerbailey/squash/internal/watch"
)

// clearScreen moves the cursor home and clears a terminal.
const clearScreen = "\033[H\033[2J"

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-compact a file every time it changes",
	Long: `Compact a file, then re-read and re-compact the whole file every time
it is written to. Bursts of writes are coalesced by --debounce.

When the file is removed or renamed the watch stops, unless --follow-rotate
is set, in which case it waits for the file to reappear.

Examples:
  squash watch /var/log/app.log
  squash watch --debounce 1s --format table app.log
  squash watch --follow-rotate /var/log/app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("debounce", config.DefaultDebounce, "quiet period before recompacting (e.g. 250ms, 1s)")
	watchCmd.Flags().Bool("follow-rotate", false, "keep watching when the file is renamed or removed")
	addEngineFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("debounce") {
		v, _ := cmd.Flags().GetString("debounce")
		viper.Set("watch.debounce", v)
	}
	if cmd.Flags().Changed("follow-rotate") {
		v, _ := cmd.Flags().GetBool("follow-rotate")
		viper.Set("watch.follow_rotate", v)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	debounce, err := cfg.Watch.DebounceDuration()
	if err != nil {
		return err
	}

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file does not exist: %s", path)
	}

	out := cmd.OutOrStdout()
	format := output.ParseFormat(cfg.Format)
	writer := output.New(out, format, output.ParseColorMode(cfg.Color))

	renders := 0
	watcher := watch.New(watch.Options{
		Path:         path,
		Debounce:     debounce,
		FollowRotate: cfg.Watch.FollowRotate,
		Logger:       logger,
		OnChange: func(lines []string) error {
			res, err := compact(cfg, lines, logger)
			if err != nil {
				return err
			}
			if renders > 0 {
				writeSeparator(out, format)
			}
			renders++
			return writer.WriteResult(res)
		},
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = watcher.Run(ctx)
	if errors.Is(err, watch.ErrRotated) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return nil
	}
	return err
}

// writeSeparator divides consecutive reports: a terminal is cleared, YAML
// gets a document marker and everything else a blank line. JSON documents
// follow each other directly.
func writeSeparator(w io.Writer, format output.Format) {
	switch format {
	case output.FormatJSON:
	case output.FormatYAML:
		fmt.Fprintln(w, "---")
	default:
		if f, ok := w.(*os.File); ok && output.IsTerminal(f) {
			fmt.Fprint(w, clearScreen)
			return
		}
		fmt.Fprintln(w)
	}
}
