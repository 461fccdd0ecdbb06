package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/bimmerbailey/squash/internal/config"
)

// Provider defines the interface for LLM interactions.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Chat sends messages and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)

	// ChatStream sends messages and returns a channel of streaming events.
	// The channel is closed when the stream completes or fails.
	ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamEvent, error)

	// Heartbeat returns nil when the provider is reachable.
	Heartbeat(ctx context.Context) error

	// ModelAvailable reports whether model can be used without pulling it first.
	ModelAvailable(ctx context.Context, model string) (bool, error)
}

// Message represents a single message in a conversation.
type Message struct {
	// Role identifies the message sender: "system", "user", or "assistant"
	Role string

	Content string
}

// ChatOptions configures chat behavior. A nil *ChatOptions uses provider defaults.
type ChatOptions struct {
	Model string

	// Temperature controls randomness; low values keep explanations literal.
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

// Response represents a complete LLM response.
type Response struct {
	Content      string
	Model        string
	TokensPrompt int
	TokensTotal  int
}

// StreamEvent represents a single event in a streaming response.
type StreamEvent struct {
	// Content is the incremental text chunk
	Content string

	// Done marks the final event of the stream
	Done bool

	// Error terminates the stream when non-nil
	Error error
}

// Common errors returned by LLM providers.
var (
	// ErrProviderUnavailable indicates the LLM provider is not reachable
	ErrProviderUnavailable = errors.New("llm provider is not reachable")

	// ErrModelNotFound indicates the requested model is not available
	ErrModelNotFound = errors.New("requested model is not available")

	// ErrContextCanceled indicates the operation was canceled via context
	ErrContextCanceled = errors.New("operation was canceled")

	// ErrUnknownProvider is returned by NewProvider for an unregistered name
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// Factory builds a Provider from the application configuration.
type Factory func(cfg config.LLMConfig, logger *slog.Logger) (Provider, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a provider available under name. Provider packages call it
// from init. Registering the same name twice panics.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name = strings.ToLower(name)
	if factory == nil {
		panic("llm: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("llm: Register called twice for provider " + name)
	}
	registry[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewProvider creates the provider selected by cfg.Provider.
func NewProvider(cfg config.LLMConfig, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	name := strings.ToLower(cfg.Provider)
	if name == "" {
		return nil, errors.New("llm provider not specified in configuration")
	}

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownProvider, name, strings.Join(Providers(), ", "))
	}

	logger.Debug("creating llm provider", "type", name)
	return factory(cfg, logger)
}

// Stream runs a streaming chat, copies every chunk to w as it arrives, and
// returns the full answer. A failed stream returns the text received so far
// together with the error. The provider's stream is cancelled when Stream
// returns.
func Stream(ctx context.Context, p Provider, messages []Message, opts *ChatOptions, w io.Writer) (string, error) {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := p.ChatStream(streamCtx, messages, opts)
	if err != nil {
		return "", err
	}

	var answer strings.Builder
	for event := range events {
		if event.Error != nil {
			return answer.String(), event.Error
		}
		if event.Content == "" {
			continue
		}
		answer.WriteString(event.Content)
		if w != nil {
			if _, err := io.WriteString(w, event.Content); err != nil {
				return answer.String(), fmt.Errorf("writing answer: %w", err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return answer.String(), fmt.Errorf("%w: %v", ErrContextCanceled, err)
	}
	return answer.String(), nil
}
