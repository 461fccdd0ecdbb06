package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bimmerbailey/squash/internal/analyzer"
	"github.com/bimmerbailey/squash/internal/config"
	"github.com/bimmerbailey/squash/internal/logging"
	"github.com/bimmerbailey/squash/internal/output"
	"github.com/bimmerbailey/squash/internal/pattern"
	"github.com/bimmerbailey/squash/internal/preprocess"
	"github.com/bimmerbailey/squash/internal/source"
)

// compact runs the preprocessing stages and the pattern engine over lines.
func compact(cfg *config.Config, lines []string, logger *slog.Logger) (output.Result, error) {
	var redactor *preprocess.Redactor
	if cfg.Redaction.Enabled {
		r, err := preprocess.NewRedactor(cfg.Redaction.Patterns)
		if err != nil {
			return output.Result{}, err
		}
		redactor = r
	}

	pre := preprocess.New(
		preprocess.WithStripIndent(cfg.Preprocess.StripIndent),
		preprocess.WithBinaryImages(cfg.Preprocess.BinaryImages),
		preprocess.WithRedactor(redactor),
		preprocess.WithLogger(logger),
	).Process(lines)

	opts := append(cfg.Engine.Options(), pattern.WithLogger(logger))
	groups := pattern.New(opts...).Mine(pre.Lines)

	res := output.Result{
		Report: pre.Append(pattern.Render(groups)),
		Groups: groups,
		Stats:  analyzer.Summarize(groups, analyzer.DefaultTopN),
	}
	if !pre.Images.Empty() {
		images := pre.Images
		res.Images = &images
	}

	logger.Debug("compaction complete",
		"input_lines", len(lines),
		"patterns", res.Stats.Patterns,
		"ratio", res.Stats.CompressionRatio)
	return res, nil
}

// readInput reads the files named by args, or stdin when there are none. It
// also returns the expanded file list.
func readInput(cmd *cobra.Command, args []string) ([]string, []string, error) {
	if len(args) > 0 {
		files, err := config.ExpandGlobs(args)
		if err != nil {
			return nil, nil, err
		}
		lines, err := source.ReadFiles(commandContext(cmd), files)
		if err != nil {
			return nil, nil, err
		}
		return lines, files, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
		return nil, nil, source.ErrNoInput
	}
	lines, err := source.ReadLines(in)
	if err != nil {
		return nil, nil, fmt.Errorf("stdin: %w", err)
	}
	return lines, nil, nil
}

// newLogger installs the default logger on the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	structured := output.ParseFormat(cfg.Format).IsStructured()
	return logging.Init(cmd.ErrOrStderr(), structured, logging.Level(cfg.LogLevel, cfg.Verbose))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
