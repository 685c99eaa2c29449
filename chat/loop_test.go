package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/geminichat/foundation/session"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func runLoop(t *testing.T, gen session.Generator, input string) string {
	t.Helper()

	var out bytes.Buffer
	loop, err := NewLoop(gen, NewTerminalUI(strings.NewReader(input), &out, false), "gemini-test", nil)
	require.NoError(t, err)
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func TestNewLoop_RequiresDependencies(t *testing.T) {
	ui := NewTerminalUI(strings.NewReader(""), nil, false)

	_, err := NewLoop(nil, ui, "m", nil)
	assert.Error(t, err)

	_, err = NewLoop(&mockGenerator{}, nil, "m", nil)
	assert.Error(t, err)
}

func TestLoop_QuitImmediately(t *testing.T) {
	gen := &mockGenerator{}

	out := runLoop(t, gen, "quit\n")

	assert.Contains(t, out, "Gemini ilə söhbət (gemini-test)")
	assert.Contains(t, out, "Sağ olun!")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestLoop_ExitKeywordsAnyCase(t *testing.T) {
	for _, kw := range []string{"çıx", "ÇIX", "Exit", "QUIT", "  exit "} {
		t.Run(kw, func(t *testing.T) {
			gen := &mockGenerator{}

			out := runLoop(t, gen, kw+"\nHello\n")

			assert.Contains(t, out, "Sağ olun!")
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestLoop_Reply(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Hello").Return("Hi there", nil).Once()

	out := runLoop(t, gen, "Hello\nquit\n")

	assert.Contains(t, out, "Gemini: Hi there\n")
	// The prompt is shown again after the reply.
	assert.Equal(t, 2, strings.Count(out, "Siz: "))
	gen.AssertExpectations(t)
}

func TestLoop_RemoteFailureContinues(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Hello").
		Return("", &session.RemoteCallError{Err: errors.New("quota exceeded")}).Once()
	gen.On("Generate", mock.Anything, "Again").Return("Now it works", nil).Once()

	out := runLoop(t, gen, "Hello\nAgain\nquit\n")

	assert.Contains(t, out, "Xəta: quota exceeded\n")
	assert.Contains(t, out, "Gemini: Now it works\n")
	gen.AssertExpectations(t)
}

func TestLoop_SameInputTwiceCallsTwice(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Hello").Return("Hi", nil).Twice()

	runLoop(t, gen, "Hello\nHello\nexit\n")

	gen.AssertNumberOfCalls(t, "Generate", 2)
}

func TestLoop_EmptyInputIsForwarded(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "").
		Return("", &session.RemoteCallError{Err: errors.New("contents must not be empty")}).Once()

	out := runLoop(t, gen, "\nquit\n")

	assert.Contains(t, out, "Xəta: contents must not be empty")
	gen.AssertExpectations(t)
}

func TestLoop_EndOfInput(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Hello").Return("Hi", nil).Once()

	out := runLoop(t, gen, "Hello")

	assert.Contains(t, out, "Gemini: Hi")
	assert.Contains(t, out, "Sağ olun!")
	gen.AssertExpectations(t)
}

func TestLoop_ReadError(t *testing.T) {
	gen := &mockGenerator{}

	var out bytes.Buffer
	long := strings.Repeat("x", maxLineBytes+1)
	loop, err := NewLoop(gen, NewTerminalUI(strings.NewReader(long), &out, false), "gemini-test", nil)
	require.NoError(t, err)

	err = loop.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
