package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ModelNotFoundError marks the error class where the backend rejected the
// model identifier itself. Model ids get deprecated and renamed upstream, so
// callers iterating a candidate list treat this class as "try the next one" —
// every other error class must propagate.
type ModelNotFoundError struct {
	Model string
	Cause error
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found: %v", e.Model, e.Cause)
}

func (e *ModelNotFoundError) Unwrap() error {
	return e.Cause
}

func IsModelNotFound(err error) bool {
	var notFound *ModelNotFoundError
	return errors.As(err, &notFound)
}
