// Package genai wraps the OpenAI Responses API behind a small
// interface so services and tests do not touch the SDK directly.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// TextGenerator produces a text completion for an instruction plus
// input pair.
type TextGenerator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
	Model() string
}

// OpenAIGenerator implements TextGenerator on the Responses API.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Model returns the configured model name, recorded on generated
// documents.
func (g *OpenAIGenerator) Model() string { return g.model }

// Generate runs one Responses API call and returns the output text.
func (g *OpenAIGenerator) Generate(ctx context.Context, instructions, input string) (string, error) {
	resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        shared.ResponsesModel(g.model),
		Instructions: openai.String(instructions),
		Input:        responses.ResponseNewParamsInputUnion{OfString: openai.String(input)},
	})
	if err != nil {
		return "", fmt.Errorf("genai: response call failed: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("genai: model returned empty output")
	}
	return text, nil
}
