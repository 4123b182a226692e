package llm

import (
	"context"
	"errors"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the single model identifier used by both pipelines.
const DefaultModel = "models/gemini-2.0-flash-001"

var ErrEmptyCompletion = errors.New("model returned no text")

type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = DefaultModel
	}

	return &Gemini{client: c, model: c.GenerativeModel(modelName)}, nil
}

func (g *Gemini) Close() error { return g.client.Close() }

// EnvGemini resolves the API key per invocation: a missing credential is
// a fatal configuration error for that call, not a startup-time check.
type EnvGemini struct {
	Model string
}

func (e EnvGemini) Close() error { return nil }

func (e EnvGemini) Complete(ctx context.Context, prompt string) (string, error) {
	g, err := NewGemini(ctx, os.Getenv("GEMINI_API_KEY"), e.Model)
	if err != nil {
		return "", err
	}
	defer g.Close()
	return g.Complete(ctx, prompt)
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				out += string(t)
			}
		}
	}
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
