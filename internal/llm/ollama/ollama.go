// Package ollama provides an Ollama implementation of llm.Provider.
//
// Importing the package registers it with llm under the name "ollama".
package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/bimmerbailey/squash/internal/config"
	"github.com/bimmerbailey/squash/internal/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama3.2"

func init() {
	llm.Register("ollama", func(cfg config.LLMConfig, logger *slog.Logger) (llm.Provider, error) {
		return New(Config{
			Host:      cfg.Ollama.Host,
			Model:     cfg.Ollama.Model,
			KeepAlive: cfg.Ollama.KeepAlive,
			NumCtx:    cfg.Ollama.NumCtx,
		}, logger)
	})
}

// Config holds Ollama-specific configuration.
type Config struct {
	// Host is the Ollama API endpoint (e.g., "http://localhost:11434").
	// Empty uses OLLAMA_HOST or the client default.
	Host string

	// Model is the default model (e.g., "llama3.2")
	Model string

	// KeepAlive is how long the model stays loaded after a request ("5m").
	KeepAlive string

	// NumCtx overrides the context window size when > 0.
	NumCtx int
}

// Provider implements llm.Provider for Ollama.
type Provider struct {
	client    *api.Client
	config    Config
	keepAlive *api.Duration
	logger    *slog.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New creates a new Ollama provider.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	var client *api.Client
	if cfg.Host != "" {
		parsedURL, err := url.Parse(cfg.Host)
		if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
			logger.Error("invalid ollama host URL", "host", cfg.Host, "error", err)
			return nil, fmt.Errorf("invalid ollama host %q", cfg.Host)
		}
		client = api.NewClient(parsedURL, http.DefaultClient)
		logger.Debug("created ollama client with explicit host", "host", cfg.Host)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			logger.Error("failed to create ollama client from environment", "error", err)
			return nil, fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
		}
		logger.Debug("created ollama client from environment")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
		logger.Debug("using default model", "model", cfg.Model)
	}

	p := &Provider{
		client: client,
		config: cfg,
		logger: logger,
	}

	if cfg.KeepAlive != "" {
		d, err := time.ParseDuration(cfg.KeepAlive)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama keep_alive %q: %w", cfg.KeepAlive, err)
		}
		p.keepAlive = &api.Duration{Duration: d}
	}

	return p, nil
}

// request builds a chat request for messages with opts applied over the
// provider defaults.
func (p *Provider) request(messages []llm.Message, opts *llm.ChatOptions, stream bool) *api.ChatRequest {
	model := p.config.Model
	options := map[string]any{"temperature": float32(0)}

	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		options["temperature"] = opts.Temperature
		if opts.MaxTokens > 0 {
			options["num_predict"] = opts.MaxTokens
		}
	}
	if p.config.NumCtx > 0 {
		options["num_ctx"] = p.config.NumCtx
	}

	converted := make([]api.Message, len(messages))
	for i, msg := range messages {
		converted[i] = api.Message{Role: msg.Role, Content: msg.Content}
	}

	return &api.ChatRequest{
		Model:     model,
		Messages:  converted,
		Options:   options,
		Stream:    &stream,
		KeepAlive: p.keepAlive,
	}
}

// Chat sends messages to Ollama and returns a complete response.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages cannot be empty")
	}

	req := p.request(messages, opts, false)
	p.logger.Debug("sending chat request", "model", req.Model, "messages", len(messages))

	var response api.ChatResponse
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		p.logger.Error("chat request failed", "error", err, "model", req.Model)
		return nil, wrapError(err)
	}

	p.logger.Debug("chat request completed",
		"model", response.Model,
		"prompt_tokens", response.PromptEvalCount,
		"total_tokens", response.EvalCount)

	return &llm.Response{
		Content:      response.Message.Content,
		Model:        response.Model,
		TokensPrompt: response.PromptEvalCount,
		TokensTotal:  response.PromptEvalCount + response.EvalCount,
	}, nil
}

// ChatStream sends messages to Ollama and returns a channel of streaming
// events. The producing goroutine exits when the stream ends or ctx is done.
func (p *Provider) ChatStream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan llm.StreamEvent, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages cannot be empty")
	}

	req := p.request(messages, opts, true)
	p.logger.Debug("starting chat stream", "model", req.Model, "messages", len(messages))

	events := make(chan llm.StreamEvent, 10)
	send := func(ev llm.StreamEvent) error {
		select {
		case events <- ev:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	go func() {
		defer close(events)

		err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
			if resp.Message.Content != "" || resp.Done {
				if err := send(llm.StreamEvent{Content: resp.Message.Content, Done: resp.Done}); err != nil {
					return err
				}
			}
			if resp.Done {
				p.logger.Debug("chat stream completed",
					"model", resp.Model,
					"prompt_tokens", resp.PromptEvalCount,
					"total_tokens", resp.EvalCount)
			}
			return nil
		})

		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			p.logger.Debug("chat stream canceled by context")
			// Best effort: the reader may already be gone.
			select {
			case events <- llm.StreamEvent{Error: fmt.Errorf("%w: %v", llm.ErrContextCanceled, err), Done: true}:
			default:
			}
		default:
			p.logger.Error("chat stream failed", "error", err, "model", req.Model)
			_ = send(llm.StreamEvent{Error: wrapError(err), Done: true})
		}
	}()

	return events, nil
}

// Heartbeat checks if the Ollama service is reachable and healthy.
func (p *Provider) Heartbeat(ctx context.Context) error {
	p.logger.Debug("checking ollama heartbeat")

	if err := p.client.Heartbeat(ctx); err != nil {
		p.logger.Error("ollama heartbeat failed", "error", err)
		return wrapError(err)
	}

	p.logger.Debug("ollama heartbeat successful")
	return nil
}

// ModelAvailable checks if a specific model has been pulled.
func (p *Provider) ModelAvailable(ctx context.Context, model string) (bool, error) {
	p.logger.Debug("checking model availability", "model", model)

	listResp, err := p.client.List(ctx)
	if err != nil {
		p.logger.Error("failed to list models", "error", err)
		return false, wrapError(err)
	}

	for _, m := range listResp.Models {
		if m.Name == model || m.Model == model {
			return true, nil
		}
	}

	p.logger.Debug("model not found", "model", model, "available_count", len(listResp.Models))
	return false, nil
}

func wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", llm.ErrContextCanceled, err)
	}
	return fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
}
