package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.0-flash"

// Provider defines the interface for the completion backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// CreateChatModel creates an Eino chat model authenticated with apiKey
	CreateChatModel(ctx context.Context, apiKey string) (model.BaseChatModel, error)
}

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	model string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiProvider{model: modelName}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// CreateChatModel creates an Eino ChatModel for Gemini
func (p *GeminiProvider) CreateChatModel(ctx context.Context, apiKey string) (model.BaseChatModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  p.model,
	})
}
