// Package session holds the process-lifetime handle used to issue requests to
// the remote generative-language model.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator is the single synchronous operation the chat loop and the HTTP
// front end depend on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is wrapped in a RemoteCallError when the model answers
// without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// RemoteCallError reports any failure of a call to the remote model.
// Its message is the underlying error's message, unchanged.
type RemoteCallError struct {
	Err error
}

func (e *RemoteCallError) Error() string { return e.Err.Error() }

func (e *RemoteCallError) Unwrap() error { return e.Err }

// Session issues single-turn requests to a chat model. It keeps no history,
// so it is safe for concurrent use.
type Session struct {
	id                string
	chatModel         model.BaseChatModel
	modelName         string
	systemInstruction string
	handlers          []callbacks.Handler
	logger            *zap.Logger
}

type config struct {
	modelName         string
	systemInstruction string
	handlers          []callbacks.Handler
	logger            *zap.Logger
}

// Option defines the functional option type for configuring a Session.
type Option func(*config)

// WithModelName sets the name reported in callbacks and logs.
func WithModelName(name string) Option {
	return func(c *config) {
		c.modelName = name
	}
}

// WithSystemInstruction prepends a system message to every request.
func WithSystemInstruction(instruction string) Option {
	return func(c *config) {
		c.systemInstruction = instruction
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCallbacks registers eino callback handlers run around each model call.
func WithCallbacks(handlers ...callbacks.Handler) Option {
	return func(c *config) {
		c.handlers = append(c.handlers, handlers...)
	}
}

// New creates a Session around chatModel.
func New(chatModel model.BaseChatModel, opts ...Option) (*Session, error) {
	if chatModel == nil {
		return nil, errors.New("chat model cannot be nil")
	}

	cfg := &config{
		modelName: "gemini",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	s := &Session{
		id:                uuid.New().String(),
		chatModel:         chatModel,
		modelName:         cfg.modelName,
		systemInstruction: cfg.systemInstruction,
		handlers:          cfg.handlers,
	}
	s.logger = cfg.logger.With(zap.String("session_id", s.id), zap.String("model", s.modelName))
	s.logger.Debug("session created")

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// ModelName returns the name of the model this session talks to.
func (s *Session) ModelName() string { return s.modelName }

// Generate sends prompt to the model and returns its text. Every call reaches
// the model exactly once; failures are returned as *RemoteCallError.
func (s *Session) Generate(ctx context.Context, prompt string) (string, error) {
	if len(s.handlers) > 0 {
		ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
			Name:      s.modelName,
			Type:      "Gemini",
			Component: components.ComponentOfChatModel,
		}, s.handlers...)
	}

	start := time.Now()
	resp, err := s.chatModel.Generate(ctx, s.messages(prompt))
	latency := time.Since(start)

	if err != nil {
		s.logger.Debug("generate failed", zap.Duration("latency", latency), zap.Error(err))
		return "", &RemoteCallError{Err: err}
	}
	if resp == nil || resp.Content == "" {
		s.logger.Debug("generate returned no text", zap.Duration("latency", latency))
		return "", &RemoteCallError{Err: ErrEmptyResponse}
	}

	s.logger.Debug("generate succeeded",
		zap.Duration("latency", latency),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("reply_len", len(resp.Content)))
	return resp.Content, nil
}

// messages builds the request without templating so that braces in user text
// are sent verbatim.
func (s *Session) messages(prompt string) []*schema.Message {
	msgs := make([]*schema.Message, 0, 2)
	if s.systemInstruction != "" {
		msgs = append(msgs, schema.SystemMessage(s.systemInstruction))
	}
	return append(msgs, schema.UserMessage(prompt))
}

var _ Generator = (*Session)(nil)
