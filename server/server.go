// Package server exposes a Session over HTTP.
package server

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	hertzserver "github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olusolaa/geminichat/foundation/session"
)

const (
	DefaultAddr     = ":8080"
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

type generateRequest struct {
	Prompt *string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server is the HTTP front end over a single Session.
type Server struct {
	h      *hertzserver.Hertz
	gen    session.Generator
	logger *zap.Logger
}

type config struct {
	addr string
}

// Option defines the functional option type for configuring a Server.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// New builds a Server with its routes registered. Nothing listens until Run.
func New(gen session.Generator, logger *zap.Logger, opts ...Option) (*Server, error) {
	if gen == nil {
		return nil, errors.New("session is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := &config{addr: DefaultAddr}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.addr == "" {
		cfg.addr = DefaultAddr
	}

	s := &Server{
		h:      hertzserver.Default(hertzserver.WithHostPorts(cfg.addr)),
		gen:    gen,
		logger: logger,
	}

	s.h.Use(s.requestID)
	s.h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "pong")
	})
	s.h.POST("/v1/generate", s.handleGenerate)

	return s, nil
}

// Run serves until the process receives a termination signal, then shuts
// down gracefully.
func (s *Server) Run() {
	s.logger.Debug("http server starting")
	s.h.Spin()
}

func (s *Server) requestID(ctx context.Context, c *app.RequestContext) {
	id := string(c.GetHeader(RequestIDHeader))
	if id == "" {
		id = uuid.New().String()
	}
	c.Set(requestIDKey, id)
	c.Header(RequestIDHeader, id)

	c.Next(ctx)

	s.logger.Debug("request handled",
		zap.String("request_id", id),
		zap.String("method", string(c.Method())),
		zap.String("path", string(c.Path())),
		zap.Int("status", c.Response.StatusCode()))
}

func (s *Server) handleGenerate(ctx context.Context, c *app.RequestContext) {
	var req generateRequest
	if err := c.BindJSON(&req); err != nil {
		writeError(c, consts.StatusBadRequest, "bad_request", "request body must be JSON: "+err.Error())
		return
	}
	if req.Prompt == nil {
		writeError(c, consts.StatusBadRequest, "bad_request", `field "prompt" is required`)
		return
	}

	text, err := s.gen.Generate(ctx, *req.Prompt)
	if err != nil {
		s.logger.Debug("remote call failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		writeError(c, consts.StatusBadGateway, "remote_call_failed", err.Error())
		return
	}

	c.JSON(consts.StatusOK, generateResponse{Text: text})
}

func writeError(c *app.RequestContext, status int, code, message string) {
	c.JSON(status, errorEnvelope{
		Error: errorBody{
			Code:    code,
			Message: message,
		},
	})
}
