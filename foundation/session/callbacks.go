package session

import (
	"context"

	"github.com/cloudwego/eino/callbacks"
	"go.uber.org/zap"
)

// LoggingHandler returns an eino callback handler that records model events
// at debug level.
func LoggingHandler(logger *zap.Logger) callbacks.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	builder := callbacks.NewHandlerBuilder()
	builder.OnStartFn(func(ctx context.Context, info *callbacks.RunInfo, _ callbacks.CallbackInput) context.Context {
		logger.Debug("model call started", runInfoFields(info)...)
		return ctx
	})
	builder.OnEndFn(func(ctx context.Context, info *callbacks.RunInfo, _ callbacks.CallbackOutput) context.Context {
		logger.Debug("model call finished", runInfoFields(info)...)
		return ctx
	})
	builder.OnErrorFn(func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
		logger.Debug("model call failed", append(runInfoFields(info), zap.Error(err))...)
		return ctx
	})
	return builder.Build()
}

func runInfoFields(info *callbacks.RunInfo) []zap.Field {
	if info == nil {
		return nil
	}
	return []zap.Field{
		zap.String("component", string(info.Component)),
		zap.String("name", info.Name),
		zap.String("type", info.Type),
	}
}
