package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// RefinerInterface rewrites a brief product or service name into a
// professional line-item description. Calls are best-effort and safe to
// retry; callers fall back to the original text on any failure.
type RefinerInterface interface {
	Refine(ctx context.Context, input string) (string, error)
}

type AnthropicRefiner struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicRefiner(apiKey, model string) RefinerInterface {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicRefiner{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (r *AnthropicRefiner) Refine(ctx context.Context, input string) (string, error) {
	prompt := fmt.Sprintf("Given a brief product or service name %q, rewrite it as a professional, concise invoice line item description. Return only the description text.", input)

	msg, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: 50,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("refine description: %w", err)
	}

	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			if out := strings.TrimSpace(text.Text); out != "" {
				return out, nil
			}
		}
	}
	return "", fmt.Errorf("refine description: empty model response")
}
