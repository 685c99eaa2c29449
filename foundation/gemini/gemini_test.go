package gemini

import (
	"context"
	"os"
	"testing"

	"github.com/olusolaa/geminichat/foundation/config"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	if err == nil {
		t.Fatal("expected error when API key is empty, got nil")
	}
	if err != ErrMissingAPIKey {
		t.Errorf("expected ErrMissingAPIKey, got '%v'", err)
	}
}

func TestNewClient_WithAPIKey(t *testing.T) {
	// Constructing a client does not contact the service.
	client, err := NewClient(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("failed to create Gemini client: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}
}

func TestNewChatModel_NilClient(t *testing.T) {
	_, err := NewChatModel(context.Background(), nil, ChatModelName)
	if err == nil {
		t.Error("expected error with nil client, got nil")
	}
}

func TestNewChatModel_DefaultModelName(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("failed to create Gemini client: %v", err)
	}

	chatModel, err := NewChatModel(context.Background(), client, "")
	if err != nil {
		t.Fatalf("failed to create chat model: %v", err)
	}
	if chatModel == nil {
		t.Fatal("chat model is nil")
	}
}

func TestNewSession_MissingAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := NewSession(context.Background(), cfg, nil)
	if err == nil {
		t.Error("expected error when API key is empty, got nil")
	}
}

func TestNewSession_WithAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"

	s, err := NewSession(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if s.ModelName() != ChatModelName {
		t.Errorf("expected model name '%s', got '%s'", ChatModelName, s.ModelName())
	}
}

func TestSession_Live(t *testing.T) {
	apiKey := os.Getenv(config.APIKeyEnv)
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	cfg := config.DefaultConfig()
	cfg.APIKey = apiKey

	s, err := NewSession(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	text, err := s.Generate(context.Background(), "Reply with the single word: pong")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text == "" {
		t.Error("expected non-empty reply")
	}
}

func TestConstants(t *testing.T) {
	expectedChatModel := "gemini-2.5-flash"
	if ChatModelName != expectedChatModel {
		t.Errorf("expected ChatModelName '%s', got '%s'", expectedChatModel, ChatModelName)
	}
}
