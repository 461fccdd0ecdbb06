// Package llm sends compacted reports to a language model for explanation.
//
// Providers live in subpackages and register themselves by name, the way
// database/sql drivers do. Importing a provider package for its side effect
// is enough to make it selectable:
//
//	import _ "github.com/bimmerbailey/squash/internal/llm/ollama"
//
//	provider, err := llm.NewProvider(cfg.LLM, logger)
//	if err != nil {
//	    return err
//	}
//	if err := provider.Heartbeat(ctx); err != nil {
//	    return err
//	}
//	answer, err := llm.Stream(ctx, provider, messages, &llm.ChatOptions{
//	    Model:       cfg.LLM.Ollama.Model,
//	    Temperature: cfg.LLM.Temperature,
//	}, os.Stdout)
//
// Errors wrap ErrProviderUnavailable when the service cannot be reached and
// ErrContextCanceled when the caller gave up, so callers can branch with
// errors.Is.
package llm
