package llm

import "context"

type Provider interface {
	// Complete sends one prompt and returns the model's full text output.
	// Stateless: each call is an independent request.
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
