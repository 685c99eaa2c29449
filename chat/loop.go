// Package chat implements the interactive read-generate-print loop.
package chat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/olusolaa/geminichat/foundation/session"
)

// Loop drives the interactive cycle against a single Session.
type Loop struct {
	session   session.Generator
	ui        *TerminalUI
	modelName string
	logger    *zap.Logger
}

// NewLoop creates a Loop. The session is used for every request and is never
// replaced.
func NewLoop(s session.Generator, ui *TerminalUI, modelName string, logger *zap.Logger) (*Loop, error) {
	if s == nil {
		return nil, errors.New("session is required")
	}
	if ui == nil {
		return nil, errors.New("terminal UI is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		session:   s,
		ui:        ui,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Run prints the greeting and then reads lines until an exit keyword or the
// end of input. Remote failures are shown to the user and never end the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.ui.DisplayWelcome(l.modelName)

	for {
		input, ok := l.ui.GetUserInput()
		if !ok {
			if err := l.ui.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			l.logger.Debug("chat loop finished", zap.String("reason", "end of input"))
			l.ui.DisplayFarewell()
			return nil
		}

		if IsExitKeyword(input) {
			l.logger.Debug("chat loop finished", zap.String("reason", "exit keyword"))
			l.ui.DisplayFarewell()
			return nil
		}

		reply, err := l.session.Generate(ctx, input)
		if err != nil {
			l.ui.DisplayError(err)
			continue
		}
		l.ui.DisplayReply(reply)
	}
}
