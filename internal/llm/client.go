// Package llm talks to the completion backend that writes PR descriptions.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/prompt"
)

// ClientOptions configures a Client
type ClientOptions struct {
	// Provider builds the chat model. Defaults to Gemini with DefaultModel.
	Provider Provider

	// ValidateKeyFormat rejects keys that do not look like Gemini keys before any call
	ValidateKeyFormat bool
}

// Usage is the token usage reported for the last call
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client owns one chat model. It starts uninitialized and becomes ready
// after a successful Initialize.
type Client struct {
	provider          Provider
	validateKeyFormat bool

	chatModel model.BaseChatModel
	lastUsage Usage
}

// NewClient creates an uninitialized client
func NewClient(opts ClientOptions) *Client {
	p := opts.Provider
	if p == nil {
		p = NewGeminiProvider(DefaultModel)
	}
	return &Client{provider: p, validateKeyFormat: opts.ValidateKeyFormat}
}

// Initialize validates the key and builds the chat model. On failure the
// client is left uninitialized.
func (c *Client) Initialize(ctx context.Context, apiKey string) error {
	c.chatModel = nil

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrCredentialMissing
	}
	if c.validateKeyFormat {
		if err := ValidateKeyFormat(apiKey); err != nil {
			return err
		}
	}

	log.Debug("Creating %s chat model", c.provider.Name())
	chatModel, err := c.provider.CreateChatModel(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClientInit, err)
	}
	if chatModel == nil {
		return fmt.Errorf("%w: provider returned no model", ErrClientInit)
	}

	c.chatModel = chatModel
	return nil
}

// IsReady reports whether Initialize succeeded
func (c *Client) IsReady() bool {
	return c.chatModel != nil
}

// LastUsage returns the token usage of the most recent successful call
func (c *Client) LastUsage() Usage {
	return c.lastUsage
}

// Generate sends both blocks as one user message and returns the trimmed reply
func (c *Client) Generate(ctx context.Context, instruction, content string) (string, error) {
	if !c.IsReady() {
		return "", ErrNotReady
	}

	log.DebugPrompt("Instruction", instruction)
	log.DebugPrompt("Content", content)

	messages := []*schema.Message{
		schema.UserMessage(prompt.Prompt{Instruction: instruction, Content: content}.Text()),
	}

	start := time.Now()
	resp, err := c.chatModel.Generate(ctx, messages)
	log.DebugDuration("Completion", time.Since(start))
	if err != nil {
		return "", classifyProviderError(err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		c.lastUsage = Usage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
		log.DebugTokenUsage(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateDescription produces the first draft
func (c *Client) GenerateDescription(ctx context.Context, p prompt.Prompt) (string, error) {
	text, err := c.Generate(ctx, p.Instruction, p.Content)
	if err != nil {
		return "", fmt.Errorf("failed to generate PR description: %w", err)
	}
	return text, nil
}

// AdjustDescription rewrites a draft following the user's request
func (c *Client) AdjustDescription(ctx context.Context, p prompt.Prompt) (string, error) {
	text, err := c.Generate(ctx, p.Instruction, p.Content)
	if err != nil {
		return "", fmt.Errorf("failed to adjust PR description: %w", err)
	}
	return text, nil
}
