package gemini

import (
	"context"
	"errors"
	"fmt"

	geminiModel "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/olusolaa/geminichat/foundation/config"
	"github.com/olusolaa/geminichat/foundation/session"
)

const ChatModelName = config.DefaultModel

// ErrMissingAPIKey is returned when a client is requested without a credential.
var ErrMissingAPIKey = errors.New("gemini API key is required")

// NewClient creates a new Gemini API client bound to apiKey.
// No request is made; the key is first validated by the remote service on use.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return client, nil
}

// NewChatModel wraps client as an eino chat model.
func NewChatModel(ctx context.Context, client *genai.Client, modelName string) (model.ToolCallingChatModel, error) {
	if client == nil {
		return nil, errors.New("gemini client cannot be nil")
	}
	if modelName == "" {
		modelName = ChatModelName
	}

	chatModel, err := geminiModel.NewChatModel(ctx, &geminiModel.Config{
		Client: client,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return chatModel, nil
}

// NewSession builds the process-lifetime Session for cfg.
func NewSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (*session.Session, error) {
	client, err := NewClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	chatModel, err := NewChatModel(ctx, client, cfg.Model)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return session.New(chatModel,
		session.WithModelName(cfg.Model),
		session.WithSystemInstruction(cfg.SystemInstruction),
		session.WithLogger(logger),
		session.WithCallbacks(session.LoggingHandler(logger)),
	)
}
