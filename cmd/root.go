package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/config"
	"github.com/bimmerbailey/squash/internal/output"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "squash [flags] [files...]",
	Short: "Compact repetitive text into its recurring patterns",
	Long: `Squash folds repetitive text (logs, stack traces, sample reports) into
a short list of templates with counts and sample values.

Input is read from the given files (globs are expanded) or from standard
input when no file is given.

Examples:
  squash /var/log/app.log
  cat crash.txt | squash --stats
  squash --similarity 0.8 --format json 'logs/*.log'
  squash watch --follow-rotate /var/log/app.log
  squash explain --question "why did the worker crash?" crash.txt`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runCompact,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.squash.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", config.DefaultFormat, "output format (text, json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("color", config.DefaultColor, "color the text report (auto, always, never)")

	addEngineFlags(rootCmd)
	rootCmd.Flags().Bool("stats", false, "print compaction statistics to stderr")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

// addEngineFlags registers the flags shared by every command that compacts
// input. They are bound to viper when the command runs so that each command
// keeps its own flag set.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("similarity", 0, "template merge threshold in (0, 1] (default 0.6)")
	cmd.Flags().Bool("strip-indent", true, "strip leading indentation and tree markers")
	cmd.Flags().Bool("no-binary-images", false, "keep binary image lines in the engine input")
	cmd.Flags().Bool("redact", false, "replace secrets and addresses with stable placeholders")
	cmd.Flags().StringSlice("redact-patterns", nil, "redaction patterns to apply (default: all but mac_address and uuid)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".squash")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SQUASH")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		os.Exit(1)
	}
}

func runCompact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	lines, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	res, err := compact(cfg, lines, logger)
	if err != nil {
		return err
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Stats.String())
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format), output.ParseColorMode(cfg.Color))
	if err := writer.WriteResult(res); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// bindEngineFlags copies the engine flags the user set on cmd into viper.
// Unset flags leave the configured values untouched.
func bindEngineFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("similarity") {
		v, err := flags.GetFloat64("similarity")
		if err != nil {
			return err
		}
		viper.Set("engine.similarity", v)
	}
	if flags.Changed("strip-indent") {
		v, err := flags.GetBool("strip-indent")
		if err != nil {
			return err
		}
		viper.Set("preprocess.strip_indent", v)
	}
	if flags.Changed("no-binary-images") {
		v, err := flags.GetBool("no-binary-images")
		if err != nil {
			return err
		}
		viper.Set("preprocess.binary_images", !v)
	}
	if flags.Changed("redact") {
		v, err := flags.GetBool("redact")
		if err != nil {
			return err
		}
		viper.Set("redaction.enabled", v)
	}
	if flags.Changed("redact-patterns") {
		v, err := flags.GetStringSlice("redact-patterns")
		if err != nil {
			return err
		}
		viper.Set("redaction.patterns", v)
		viper.Set("redaction.enabled", true)
	}
	return nil
}

// loadConfig applies the command's flags and returns the validated config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.SetDefaults(viper.GetViper())
	if err := bindEngineFlags(cmd); err != nil {
		return nil, err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		if errors.Is(err, config.ErrInvalidEngine) {
			return nil, fmt.Errorf("%w (check --similarity and the engine section of the config file)", err)
		}
		return nil, err
	}
	return cfg, nil
}
