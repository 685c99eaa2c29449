package chat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	PromptLabel = "Siz:"
	ReplyLabel  = "Gemini:"
	ErrorLabel  = "Xəta:"

	maxLineBytes = 1 << 20
)

const (
	colorCodeBlue   = "\033[94;1m"
	colorCodeYellow = "\033[93;1m"
	colorCodeRed    = "\033[31m"
	colorCodeMuted  = "\033[2m"
	colorCodeCyan   = "\033[36m"
)

func colorize(color string, text ...any) string {
	return fmt.Sprintf("%s%s\033[0m", color, fmt.Sprint(text...))
}

// IsTerminal reports whether w is a terminal, which is when colour is on by
// default.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalUI handles all rendering and user interaction in the terminal.
type TerminalUI struct {
	scanner        *bufio.Scanner
	out            io.Writer
	colorUser      func(a ...any) string
	colorBot       func(a ...any) string
	colorError     func(a ...any) string
	colorMuted     func(a ...any) string
	colorHighlight func(a ...any) string
}

// NewTerminalUI creates a TerminalUI reading lines from in and writing to out.
// With color disabled labels are written as plain text.
func NewTerminalUI(in io.Reader, out io.Writer, color bool) *TerminalUI {
	if out == nil {
		out = io.Discard
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	paint := func(code string) func(a ...any) string {
		if !color {
			return fmt.Sprint
		}
		return func(a ...any) string {
			return colorize(code, a...)
		}
	}

	return &TerminalUI{
		scanner:        scanner,
		out:            out,
		colorUser:      paint(colorCodeBlue),
		colorBot:       paint(colorCodeYellow),
		colorError:     paint(colorCodeRed),
		colorMuted:     paint(colorCodeMuted),
		colorHighlight: paint(colorCodeCyan),
	}
}

// DisplayWelcome prints the greeting banner and exit instructions.
func (t *TerminalUI) DisplayWelcome(modelName string) {
	_, _ = fmt.Fprintln(t.out, t.colorHighlight(fmt.Sprintf("Gemini ilə söhbət (%s)", modelName)))
	_, _ = fmt.Fprintln(t.out, t.colorMuted(fmt.Sprintf("Çıxmaq üçün %s yazın.", quotedKeywords())))
}

// GetUserInput prompts the user and returns the line read, without its line
// terminator. It reports false once input is exhausted.
func (t *TerminalUI) GetUserInput() (string, bool) {
	_, _ = fmt.Fprintf(t.out, "\n%s ", t.colorUser(PromptLabel))
	if !t.scanner.Scan() {
		return "", false
	}
	return strings.TrimSuffix(t.scanner.Text(), "\r"), true
}

// Err returns the first non-EOF error encountered while reading input.
func (t *TerminalUI) Err() error {
	return t.scanner.Err()
}

// DisplayReply prints the model's answer after the speaker label.
func (t *TerminalUI) DisplayReply(text string) {
	_, _ = fmt.Fprintf(t.out, "%s %s\n", t.colorBot(ReplyLabel), text)
}

// DisplayError prints a formatted error message.
func (t *TerminalUI) DisplayError(err error) {
	_, _ = fmt.Fprintf(t.out, "%s %v\n", t.colorError(ErrorLabel), err)
}

// DisplayFarewell prints the goodbye line.
func (t *TerminalUI) DisplayFarewell() {
	_, _ = fmt.Fprintf(t.out, "\n%s\n", "Sağ olun! Görüşənədək.")
}

// DisplayMissingCredential prints the two-line startup diagnostic.
func (t *TerminalUI) DisplayMissingCredential(envName string) {
	_, _ = fmt.Fprintf(t.out, "%s %s mühit dəyişəni təyin edilməyib.\n", t.colorError(ErrorLabel), envName)
	_, _ = fmt.Fprintf(t.out, "Açarı .env faylında %s=<açar> kimi və ya mühitdə təyin edin.\n", envName)
}
