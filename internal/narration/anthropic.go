package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cory-johannsen/taleweaver/internal/config"
)

const systemPrompt = "You are the narrator of a fantasy text adventure. " +
	"Describe the outcome of the player's action in two to four vivid sentences of second-person prose. " +
	"Follow the pacing directive. Never contradict the combat log or invent dice results."

// AnthropicNarrator asks a Claude model for prose.
type AnthropicNarrator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicNarrator builds a narrator from cfg. Extra request options are
// appended after the configured ones.
//
// Precondition: cfg.APIKey and cfg.Model are non-empty; cfg.MaxTokens >= 1.
func NewAnthropicNarrator(cfg config.NarratorConfig, opts ...option.RequestOption) (*AnthropicNarrator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("anthropic narrator: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("anthropic narrator: model is required")
	}
	if cfg.MaxTokens < 1 {
		return nil, fmt.Errorf("anthropic narrator: max tokens must be >= 1, got %d", cfg.MaxTokens)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &AnthropicNarrator{
		client:    anthropic.NewClient(reqOpts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}, nil
}

// Respond sends the turn prompt and joins the text blocks of the reply.
func (n *AnthropicNarrator) Respond(ctx context.Context, action string, nc Context) (string, error) {
	msg, err := n.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(n.model),
		MaxTokens: n.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(action, nc))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic narrator: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("anthropic narrator: response missing text")
	}
	return text, nil
}
