package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/analyzer"
	"github.com/bimmerbailey/squash/internal/llm"
	_ "github.com/bimmerbailey/squash/internal/llm/ollama"
	"github.com/bimmerbailey/squash/internal/output"
	"github.com/bimmerbailey/squash/internal/prompt"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] [files...]",
	Short: "Explain a compacted report with a local LLM",
	Long: `Compact the input, then ask a local Ollama model to explain the
resulting patterns. Only the compacted report is sent, never the raw input.

Examples:
  squash explain crash.txt
  squash explain --question "which request keeps failing?" 'logs/*.log'
  journalctl -u api | squash explain --redact --model llama3.1`,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringP("question", "q", "", "ask a specific question instead of a general explanation")
	explainCmd.Flags().String("model", "", "Ollama model to use (default from llm.ollama.model)")
	addEngineFlags(explainCmd)

	rootCmd.AddCommand(explainCmd)
}

// explainResult is the structured output of explain.
type explainResult struct {
	Report string         `json:"report" yaml:"report"`
	Stats  analyzer.Stats `json:"stats" yaml:"stats"`
	Answer string         `json:"answer" yaml:"answer"`
	Model  string         `json:"model" yaml:"model"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("question")
	if cmd.Flags().Changed("model") {
		model, _ := cmd.Flags().GetString("model")
		viper.Set("llm.ollama.model", model)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	ctx := commandContext(cmd)
	format := output.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()

	lines, files, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	res, err := compact(cfg, lines, logger)
	if err != nil {
		return err
	}
	if res.Report == "" {
		fmt.Fprintln(out, "Nothing to explain: the input is empty.")
		return nil
	}

	promptType := prompt.TypeExplain
	if question != "" {
		promptType = prompt.TypeQuestion
	}
	messages, err := prompt.Build(promptType, prompt.BuildOptions{
		Report:   res.Report,
		Stats:    res.Stats.String(),
		Question: question,
		Files:    files,
		Redacted: cfg.Redaction.Enabled,
	})
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	if err := provider.Heartbeat(ctx); err != nil {
		if errors.Is(err, llm.ErrProviderUnavailable) {
			return fmt.Errorf("cannot connect to Ollama at %s: %w\n\nStart Ollama with: ollama serve",
				cfg.LLM.Ollama.Host, err)
		}
		return fmt.Errorf("LLM provider %s unavailable: %w", cfg.LLM.Provider, err)
	}

	chatOpts := &llm.ChatOptions{
		Model:       cfg.LLM.Ollama.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	if format.IsStructured() {
		answer, err := llm.Stream(ctx, provider, messages, chatOpts, nil)
		if err != nil {
			return fmt.Errorf("explaining report: %w", err)
		}
		writer := output.New(out, format, output.ColorNever)
		result := explainResult{
			Report: res.Report,
			Stats:  res.Stats,
			Answer: answer,
			Model:  chatOpts.Model,
		}
		if format == output.FormatYAML {
			return writer.WriteYAML(result)
		}
		return writer.WriteJSON(result)
	}

	fmt.Fprintln(out, "=== Answer ===")
	fmt.Fprintln(out)
	answer, err := llm.Stream(ctx, provider, messages, chatOpts, out)
	if err != nil {
		if answer != "" {
			fmt.Fprintln(out)
		}
		return fmt.Errorf("explaining report: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}
